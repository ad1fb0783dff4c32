package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/warehouse-api/internal/application/billing"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$25.000,50", money(decimal.RequireFromString("25000.5")))
	assert.Equal(t, "$999,00", money(decimal.NewFromInt(999)))
	assert.Equal(t, "-$1.000.000,00", money(decimal.NewFromInt(-1000000)))
}

func TestGenerateInvoicePDF(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	doc := appbilling.InvoiceDocument{
		Invoice:  &entity.Invoice{Number: "INV-26-000001", Date: now, Status: entity.InvoiceStatusPending},
		Order:    &entity.Order{Number: "ORD-26-000001", Date: now},
		Company:  &entity.Company{Name: "Acme"},
		Customer: &entity.Customer{Name: "Cliente"},
		Lines: []appbilling.InvoiceLine{
			{ProductCode: "P-1", ProductName: "Tornillo", Quantity: 3, UnitPrice: decimal.NewFromInt(10), Subtotal: decimal.NewFromInt(30)},
		},
		Total: decimal.NewFromInt(30),
	}

	out, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}
