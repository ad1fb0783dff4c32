package billing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	repos     repository.Repos
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(repos repository.Repos, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{repos: repos, generator: generator}
}

// DownloadInvoicePDF arma el documento de la factura (orden, empresa, cliente e ítems activos)
// y devuelve el PDF con su nombre de archivo.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, companyID, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := loadInvoice(ctx, uc.repos, companyID, invoiceID)
	if err != nil {
		return nil, "", err
	}

	order, err := uc.repos.Orders.GetByID(ctx, inv.OrderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener orden: %w", err)
	}
	if order == nil {
		return nil, "", domain.NotFound(domain.EntityOrder, inv.OrderID)
	}
	company, err := uc.repos.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.NotFound(domain.EntityCompany, companyID)
	}
	customer, err := uc.repos.Customers.GetByID(ctx, order.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", domain.NotFound(domain.EntityCustomer, order.CustomerID)
	}

	items, err := uc.repos.OrderItems.ListByOrder(ctx, order.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener ítems: %w", err)
	}
	doc := InvoiceDocument{Invoice: inv, Order: order, Company: company, Customer: customer, Total: decimal.Zero}
	for _, it := range items {
		line := InvoiceLine{
			ProductName: "Producto " + it.ProductID,
			Quantity:    it.Quantity,
			UnitPrice:   it.Price,
			Subtotal:    it.LineTotal(),
		}
		if p, pErr := uc.repos.Products.GetByID(ctx, it.ProductID); pErr == nil && p != nil {
			line.ProductName = p.Name
			line.ProductCode = p.Code
		}
		doc.Lines = append(doc.Lines, line)
		doc.Total = doc.Total.Add(line.Subtotal)
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", inv.Number), nil
}
