package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/application/orders"
	"github.com/jhoicas/warehouse-api/internal/application/usecase"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/memory"
)

type catalog struct {
	ctx        context.Context
	store      *memory.Store
	companies  *usecase.CompanyUseCase
	customers  *usecase.CustomerUseCase
	products   *usecase.ProductUseCase
	warehouses *usecase.WarehouseUseCase
	orders     *orders.OrderUseCase
	guard      *inventory.OrderItemGuard
	company    string
}

func newCatalog(t *testing.T) *catalog {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	c := &catalog{
		ctx:        context.Background(),
		store:      store,
		companies:  usecase.NewCompanyUseCase(repos.Companies),
		customers:  usecase.NewCustomerUseCase(repos),
		products:   usecase.NewProductUseCase(store, repos),
		warehouses: usecase.NewWarehouseUseCase(store, repos),
		orders:     orders.NewOrderUseCase(store, repos, nil, 0),
		guard:      inventory.NewOrderItemGuard(store, repos, nil),
	}
	company, err := c.companies.Create(c.ctx, dto.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)
	c.company = company.ID
	return c
}

func strPtr(s string) *string { return &s }

func (c *catalog) newProduct(t *testing.T, code, typ string) *dto.ProductResponse {
	t.Helper()
	price := decimal.NewFromInt(10)
	p, err := c.products.Create(c.ctx, c.company, dto.CreateProductRequest{Name: "Producto " + code, Code: code, Price: &price, Type: typ})
	require.NoError(t, err)
	return p
}

// stockItem registra una compra del producto en la bodega.
func (c *catalog) stockItem(t *testing.T, warehouseID, productID string) {
	t.Helper()
	customer, err := c.customers.Create(c.ctx, c.company, dto.CreateCustomerRequest{Type: "supplier", Name: "Proveedor"})
	require.NoError(t, err)
	order, err := c.orders.Create(c.ctx, c.company, dto.CreateOrderRequest{Type: "purchase", CustomerID: customer.ID, WarehouseID: warehouseID})
	require.NoError(t, err)
	price := decimal.NewFromInt(1)
	_, err = c.guard.Create(c.ctx, c.company, dto.CreateOrderItemRequest{OrderID: order.Order.ID, ProductID: productID, Quantity: 3, Price: &price})
	require.NoError(t, err)
}

func TestCompanyUseCase_CRUD(t *testing.T) {
	c := newCatalog(t)

	updated, err := c.companies.Update(c.ctx, c.company, dto.UpdateCompanyRequest{Name: strPtr("Acme SAS")})
	require.NoError(t, err)
	assert.Equal(t, "Acme SAS", updated.Name)

	list, err := c.companies.List(c.ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page.Total)

	require.NoError(t, c.companies.Delete(c.ctx, c.company))
	_, err = c.companies.GetByID(c.ctx, c.company)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_DuplicateCode(t *testing.T) {
	c := newCatalog(t)
	c.newProduct(t, "P-1", "solid")

	price := decimal.NewFromInt(1)
	_, err := c.products.Create(c.ctx, c.company, dto.CreateProductRequest{Name: "Otro", Code: "P-1", Price: &price, Type: "liquid"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	negative := decimal.NewFromInt(-1)
	_, err = c.products.Create(c.ctx, c.company, dto.CreateProductRequest{Name: "Otro", Code: "P-2", Price: &negative, Type: "solid"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_TypeImmutableOnceReferenced(t *testing.T) {
	c := newCatalog(t)
	warehouse, err := c.warehouses.Create(c.ctx, c.company, dto.CreateWarehouseRequest{Name: "Mixta"})
	require.NoError(t, err)
	free := c.newProduct(t, "P-1", "solid")
	used := c.newProduct(t, "P-2", "solid")
	c.stockItem(t, warehouse.ID, used.ID)

	// Caso 1: sin ítems el tipo puede cambiar
	res, err := c.products.Update(c.ctx, c.company, free.ID, dto.UpdateProductRequest{Type: strPtr("liquid")})
	require.NoError(t, err)
	assert.Equal(t, "liquid", res.Type)

	// Caso 2: con ítems activos no
	_, err = c.products.Update(c.ctx, c.company, used.ID, dto.UpdateProductRequest{Type: strPtr("liquid")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Caso 3: tampoco se elimina
	assert.ErrorIs(t, c.products.Delete(c.ctx, c.company, used.ID), domain.ErrConflict)
	require.NoError(t, c.products.Delete(c.ctx, c.company, free.ID))

	counts, err := c.products.CountByType(c.ctx, c.company)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts.Solid)
	assert.Zero(t, counts.Liquid)
}

func TestWarehouseUseCase_TypeChangeChecksStoredProducts(t *testing.T) {
	c := newCatalog(t)
	warehouse, err := c.warehouses.Create(c.ctx, c.company, dto.CreateWarehouseRequest{Name: "Central"})
	require.NoError(t, err)
	assert.Nil(t, warehouse.Type)
	c.stockItem(t, warehouse.ID, c.newProduct(t, "S-1", "solid").ID)

	_, err = c.warehouses.Update(c.ctx, c.company, warehouse.ID, dto.UpdateWarehouseRequest{Type: strPtr("liquid")})
	assert.ErrorIs(t, err, domain.ErrIncompatibleTypes)

	res, err := c.warehouses.Update(c.ctx, c.company, warehouse.ID, dto.UpdateWarehouseRequest{Type: strPtr("solid")})
	require.NoError(t, err)
	require.NotNil(t, res.Type)
	assert.Equal(t, "solid", *res.Type)

	res, err = c.warehouses.Update(c.ctx, c.company, warehouse.ID, dto.UpdateWarehouseRequest{ClearType: true})
	require.NoError(t, err)
	assert.Nil(t, res.Type)

	assert.ErrorIs(t, c.warehouses.Delete(c.ctx, c.company, warehouse.ID), domain.ErrConflict)
}

func TestCustomerUseCase_ScopedToCompany(t *testing.T) {
	c := newCatalog(t)
	created, err := c.customers.Create(c.ctx, c.company, dto.CreateCustomerRequest{Type: "customer", Name: "Juana Pérez", Email: "juana@example.com"})
	require.NoError(t, err)
	_, err = c.customers.Create(c.ctx, c.company, dto.CreateCustomerRequest{Type: "supplier", Name: "Distribuidora"})
	require.NoError(t, err)

	_, err = c.customers.GetByID(c.ctx, uuid.NewString(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := c.customers.List(c.ctx, repository.CustomerFilter{CompanyID: c.company, Search: "juana"}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, created.ID, list.Items[0].ID)

	_, err = c.customers.Create(c.ctx, uuid.NewString(), dto.CreateCustomerRequest{Type: "customer", Name: "Sin empresa"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, c.customers.Delete(c.ctx, c.company, created.ID))
	assert.ErrorIs(t, c.customers.Delete(c.ctx, c.company, created.ID), domain.ErrNotFound)
}
