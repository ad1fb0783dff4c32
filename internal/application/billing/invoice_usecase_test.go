package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/billing"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/memory"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/pdf"
)

func TestCheckTransition(t *testing.T) {
	cases := []struct {
		from, to entity.InvoiceStatus
		ok       bool
	}{
		{entity.InvoiceStatusPending, entity.InvoiceStatusPaid, true},
		{entity.InvoiceStatusPending, entity.InvoiceStatusOverdue, true},
		{entity.InvoiceStatusPending, entity.InvoiceStatusCancelled, true},
		{entity.InvoiceStatusOverdue, entity.InvoiceStatusPaid, true},
		{entity.InvoiceStatusOverdue, entity.InvoiceStatusPending, false},
		{entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled, false},
		{entity.InvoiceStatusCancelled, entity.InvoiceStatusPaid, false},
		{entity.InvoiceStatusPaid, entity.InvoiceStatusPaid, true},
	}
	for _, tc := range cases {
		err := billing.CheckTransition(tc.from, tc.to)
		if tc.ok {
			assert.NoError(t, err, "%s -> %s", tc.from, tc.to)
		} else {
			assert.ErrorIs(t, err, domain.ErrConflict, "%s -> %s", tc.from, tc.to)
		}
	}
}

type seeded struct {
	store   *memory.Store
	company string
	invoice string
}

func seed(t *testing.T) seeded {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	r := store.Repos()
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	s := seeded{store: store, company: uuid.NewString(), invoice: uuid.NewString()}
	customer, warehouse, product, order := uuid.NewString(), uuid.NewString(), uuid.NewString(), uuid.NewString()

	require.NoError(t, r.Companies.Create(ctx, &entity.Company{ID: s.company, Name: "Acme", CreatedAt: now}))
	require.NoError(t, r.Customers.Create(ctx, &entity.Customer{ID: customer, CompanyID: s.company, Name: "Cliente", Type: entity.CustomerTypeCustomer, CreatedAt: now}))
	require.NoError(t, r.Warehouses.Create(ctx, &entity.Warehouse{ID: warehouse, CompanyID: s.company, Name: "Central", CreatedAt: now}))
	require.NoError(t, r.Products.Create(ctx, &entity.Product{ID: product, CompanyID: s.company, Name: "Tornillo", Code: "T-1", Type: entity.ProductTypeSolid, Price: decimal.NewFromInt(3), CreatedAt: now}))
	require.NoError(t, r.Orders.Create(ctx, &entity.Order{ID: order, CompanyID: s.company, Number: "ORD-26-000001", Type: entity.OrderTypeSales, CustomerID: customer, WarehouseID: warehouse, Date: now, CreatedAt: now}))
	require.NoError(t, r.OrderItems.Create(ctx, &entity.OrderItem{ID: uuid.NewString(), OrderID: order, ProductID: product, Quantity: 2, Price: decimal.NewFromInt(3), CreatedAt: now}))
	require.NoError(t, r.Invoices.Create(ctx, &entity.Invoice{ID: s.invoice, CompanyID: s.company, OrderID: order, Number: "INV-26-000001", Date: now, Status: entity.InvoiceStatusPending, CreatedAt: now}))
	return s
}

func TestInvoiceUseCase_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	s := seed(t)
	uc := billing.NewInvoiceUseCase(s.store, s.store.Repos(), nil)

	// Caso 1: pending -> overdue -> paid
	res, err := uc.UpdateStatus(ctx, s.company, s.invoice, dto.UpdateInvoiceStatusRequest{Status: "overdue"})
	require.NoError(t, err)
	assert.Equal(t, "overdue", res.Status)
	res, err = uc.UpdateStatus(ctx, s.company, s.invoice, dto.UpdateInvoiceStatusRequest{Status: "paid"})
	require.NoError(t, err)
	assert.Equal(t, "paid", res.Status)

	// Caso 2: paid es final
	_, err = uc.UpdateStatus(ctx, s.company, s.invoice, dto.UpdateInvoiceStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Caso 3: factura de otra empresa
	_, err = uc.UpdateStatus(ctx, uuid.NewString(), s.invoice, dto.UpdateInvoiceStatusRequest{Status: "paid"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, s.company, "paid", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)
	assert.Equal(t, 20, list.Page.Limit)

	_, err = uc.List(ctx, s.company, "void", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPDFUseCase_Download(t *testing.T) {
	s := seed(t)
	uc := billing.NewPDFUseCase(s.store.Repos(), pdf.NewMarotoPDFGenerator())

	out, name, err := uc.DownloadInvoicePDF(context.Background(), s.company, s.invoice)
	require.NoError(t, err)
	assert.Equal(t, "factura_INV-26-000001.pdf", name)
	assert.Equal(t, "%PDF", string(out[:4]))

	_, _, err = uc.DownloadInvoicePDF(context.Background(), uuid.NewString(), s.invoice)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
