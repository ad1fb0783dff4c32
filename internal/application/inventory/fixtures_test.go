package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/memory"
)

type fixture struct {
	ctx       context.Context
	store     *memory.Store
	guard     *inventory.OrderItemGuard
	stock     *inventory.StockUseCase
	company   string
	customer  string
	warehouse string
}

func newFixture(t *testing.T, warehouseType *entity.ProductType) *fixture {
	t.Helper()
	f := &fixture{
		ctx:       context.Background(),
		store:     memory.NewStore(),
		company:   uuid.NewString(),
		customer:  uuid.NewString(),
		warehouse: uuid.NewString(),
	}
	repos := f.store.Repos()
	f.guard = inventory.NewOrderItemGuard(f.store, repos, nil)
	f.stock = inventory.NewStockUseCase(repos)

	now := time.Now().UTC()
	require.NoError(t, repos.Companies.Create(f.ctx, &entity.Company{ID: f.company, Name: "Acme", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Customers.Create(f.ctx, &entity.Customer{ID: f.customer, CompanyID: f.company, Type: entity.CustomerTypeCustomer, Name: "Cliente", CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Warehouses.Create(f.ctx, &entity.Warehouse{ID: f.warehouse, CompanyID: f.company, Name: "Central", Type: warehouseType, CreatedAt: now, UpdatedAt: now}))
	return f
}

func (f *fixture) product(t *testing.T, typ entity.ProductType) string {
	t.Helper()
	id := uuid.NewString()
	now := time.Now().UTC()
	require.NoError(t, f.store.Repos().Products.Create(f.ctx, &entity.Product{
		ID: id, CompanyID: f.company, Name: "Producto " + id[:4], Code: id[:8],
		Price: decimal.NewFromInt(10), Type: typ, CreatedAt: now, UpdatedAt: now,
	}))
	return id
}

func (f *fixture) order(t *testing.T, typ entity.OrderType) string {
	t.Helper()
	id := uuid.NewString()
	now := time.Now().UTC()
	require.NoError(t, f.store.Repos().Orders.Create(f.ctx, &entity.Order{
		ID: id, CompanyID: f.company, Number: "ORD-" + id[:8], Type: typ,
		CustomerID: f.customer, WarehouseID: f.warehouse, Date: now, CreatedAt: now, UpdatedAt: now,
	}))
	return id
}

func (f *fixture) addItem(orderID, productID string, qty int64) (*dto.OrderItemResponse, error) {
	price := decimal.NewFromInt(5)
	return f.guard.Create(f.ctx, f.company, dto.CreateOrderItemRequest{
		OrderID: orderID, ProductID: productID, Quantity: qty, Price: &price,
	})
}

func (f *fixture) stockOf(t *testing.T, productID string) int64 {
	t.Helper()
	n, err := f.stock.CurrentStock(f.ctx, productID)
	require.NoError(t, err)
	return n
}

func typePtr(t entity.ProductType) *entity.ProductType { return &t }
