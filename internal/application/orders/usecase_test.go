package orders_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/application/orders"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/memory"
)

var clock = time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

type fixture struct {
	ctx       context.Context
	store     *memory.Store
	uc        *orders.OrderUseCase
	guard     *inventory.OrderItemGuard
	company   string
	customer  string
	warehouse string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:       context.Background(),
		store:     memory.NewStore(),
		company:   uuid.NewString(),
		customer:  uuid.NewString(),
		warehouse: uuid.NewString(),
	}
	repos := f.store.Repos()
	f.uc = orders.NewOrderUseCase(f.store, repos, nil, 3).WithClock(func() time.Time { return clock })
	f.guard = inventory.NewOrderItemGuard(f.store, repos, nil)

	require.NoError(t, repos.Companies.Create(f.ctx, &entity.Company{ID: f.company, Name: "Acme", CreatedAt: clock}))
	require.NoError(t, repos.Customers.Create(f.ctx, &entity.Customer{ID: f.customer, CompanyID: f.company, Type: entity.CustomerTypeCustomer, Name: "Cliente", CreatedAt: clock}))
	require.NoError(t, repos.Warehouses.Create(f.ctx, &entity.Warehouse{ID: f.warehouse, CompanyID: f.company, Name: "Central", CreatedAt: clock}))
	return f
}

func (f *fixture) create(t *testing.T, typ entity.OrderType) *dto.CreateOrderResponse {
	t.Helper()
	res, err := f.uc.Create(f.ctx, f.company, dto.CreateOrderRequest{Type: string(typ), CustomerID: f.customer, WarehouseID: f.warehouse})
	require.NoError(t, err)
	return res
}

func (f *fixture) product(t *testing.T, typ entity.ProductType) string {
	t.Helper()
	id := uuid.NewString()
	require.NoError(t, f.store.Repos().Products.Create(f.ctx, &entity.Product{
		ID: id, CompanyID: f.company, Name: "Producto", Code: id[:8], Price: decimal.NewFromInt(1), Type: typ, CreatedAt: clock,
	}))
	return id
}

func (f *fixture) item(t *testing.T, orderID, productID string, qty int64) {
	t.Helper()
	price := decimal.NewFromInt(2)
	_, err := f.guard.Create(f.ctx, f.company, dto.CreateOrderItemRequest{OrderID: orderID, ProductID: productID, Quantity: qty, Price: &price})
	require.NoError(t, err)
}

func TestCreate_NumbersAreSequentialPerCompany(t *testing.T) {
	f := newFixture(t)

	for i := 1; i <= 3; i++ {
		res := f.create(t, entity.OrderTypePurchase)
		assert.Equal(t, fmt.Sprintf("ORD-26-%06d", i), res.Order.Number)
		assert.Nil(t, res.Invoice, "las compras no emiten factura")
	}
}

func TestCreate_SalesIssuesPendingInvoice(t *testing.T) {
	f := newFixture(t)
	f.create(t, entity.OrderTypeTransfer)

	res := f.create(t, entity.OrderTypeSales)
	require.NotNil(t, res.Invoice)
	assert.Equal(t, "ORD-26-000002", res.Order.Number)
	assert.Equal(t, "INV-26-000001", res.Invoice.Number)
	assert.Equal(t, "pending", res.Invoice.Status)
	assert.Equal(t, res.Order.ID, res.Invoice.OrderID)
	assert.True(t, res.Invoice.Date.Equal(res.Order.Date))

	list, total, err := f.store.Repos().Invoices.List(f.ctx, repository.InvoiceFilter{CompanyID: f.company}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, list, 1)
}

func TestCreate_RetriesAfterNumberCollision(t *testing.T) {
	f := newFixture(t)
	// número ocupado sin pasar por el contador
	require.NoError(t, f.store.Repos().Orders.Create(f.ctx, &entity.Order{
		ID: uuid.NewString(), CompanyID: f.company, Number: "ORD-26-000001", Type: entity.OrderTypePurchase,
		CustomerID: f.customer, WarehouseID: f.warehouse, Date: clock, CreatedAt: clock,
	}))

	res := f.create(t, entity.OrderTypePurchase)
	assert.Equal(t, "ORD-26-000002", res.Order.Number)
}

func TestCreate_RejectsForeignReferences(t *testing.T) {
	f := newFixture(t)

	// Caso 1: cliente inexistente
	_, err := f.uc.Create(f.ctx, f.company, dto.CreateOrderRequest{Type: "sales", CustomerID: uuid.NewString(), WarehouseID: f.warehouse})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Caso 2: bodega de otra empresa
	_, err = f.uc.Create(f.ctx, uuid.NewString(), dto.CreateOrderRequest{Type: "sales", CustomerID: f.customer, WarehouseID: f.warehouse})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Caso 3: tipo desconocido
	_, err = f.uc.Create(f.ctx, f.company, dto.CreateOrderRequest{Type: "gift", CustomerID: f.customer, WarehouseID: f.warehouse})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, total, err := f.store.Repos().Orders.List(f.ctx, repository.OrderFilter{CompanyID: f.company}, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestGetByID_DetailWithTotal(t *testing.T) {
	f := newFixture(t)
	product := f.product(t, entity.ProductTypeSolid)
	purchase := f.create(t, entity.OrderTypePurchase)
	f.item(t, purchase.Order.ID, product, 10)
	sale := f.create(t, entity.OrderTypeSales)
	f.item(t, sale.Order.ID, product, 4)

	detail, err := f.uc.GetByID(f.ctx, f.company, sale.Order.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Items, 1)
	assert.True(t, decimal.NewFromInt(8).Equal(detail.Total))
	require.NotNil(t, detail.Invoice)
	assert.Equal(t, sale.Invoice.Number, detail.Invoice.Number)
}

func TestUpdate_WarehouseChangeRechecksItems(t *testing.T) {
	f := newFixture(t)
	liquid := entity.ProductTypeLiquid
	liquidWarehouse := uuid.NewString()
	require.NoError(t, f.store.Repos().Warehouses.Create(f.ctx, &entity.Warehouse{
		ID: liquidWarehouse, CompanyID: f.company, Name: "Tanques", Type: &liquid, CreatedAt: clock,
	}))
	order := f.create(t, entity.OrderTypePurchase)
	f.item(t, order.Order.ID, f.product(t, entity.ProductTypeSolid), 5)

	_, err := f.uc.Update(f.ctx, f.company, order.Order.ID, dto.UpdateOrderRequest{WarehouseID: &liquidWarehouse})
	assert.ErrorIs(t, err, domain.ErrIncompatibleTypes)

	date := clock.AddDate(0, 0, 1)
	res, err := f.uc.Update(f.ctx, f.company, order.Order.ID, dto.UpdateOrderRequest{Date: &date})
	require.NoError(t, err)
	assert.Equal(t, f.warehouse, res.WarehouseID)
	assert.True(t, res.Date.Equal(date))
}

func TestDelete_PurchaseBackingSalesIsRejected(t *testing.T) {
	f := newFixture(t)
	product := f.product(t, entity.ProductTypeSolid)
	purchase := f.create(t, entity.OrderTypePurchase)
	f.item(t, purchase.Order.ID, product, 10)
	sale := f.create(t, entity.OrderTypeSales)
	f.item(t, sale.Order.ID, product, 6)

	err := f.uc.Delete(f.ctx, f.company, purchase.Order.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Caso: eliminar la venta libera stock y anula la factura
	require.NoError(t, f.uc.Delete(f.ctx, f.company, sale.Order.ID))
	stock, err := f.store.Repos().Ledger.CurrentStock(f.ctx, product)
	require.NoError(t, err)
	assert.Equal(t, int64(10), stock)

	inv, err := f.store.Repos().Invoices.GetByOrderID(f.ctx, sale.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusCancelled, inv.Status)

	_, err = f.uc.GetByID(f.ctx, f.company, sale.Order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.uc.Delete(f.ctx, f.company, purchase.Order.ID))
}
