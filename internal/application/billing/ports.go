package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// InvoiceLine línea de la factura lista para imprimir.
type InvoiceLine struct {
	ProductCode string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// InvoiceDocument datos completos de una factura para su representación gráfica.
type InvoiceDocument struct {
	Invoice  *entity.Invoice
	Order    *entity.Order
	Company  *entity.Company
	Customer *entity.Customer
	Lines    []InvoiceLine
	Total    decimal.Decimal
}

// InvoicePDFGenerator genera el PDF de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}
