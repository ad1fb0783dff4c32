package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

func TestOrderItemGuard_PurchaseThenSalesFlow(t *testing.T) {
	f := newFixture(t, nil)
	product := f.product(t, entity.ProductTypeSolid)

	// Caso 1: compra de 100 acredita stock
	_, err := f.addItem(f.order(t, entity.OrderTypePurchase), product, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), f.stockOf(t, product))

	// Caso 2: venta de 30 deja 70
	sales := f.order(t, entity.OrderTypeSales)
	_, err = f.addItem(sales, product, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(70), f.stockOf(t, product))

	// Caso 3: venta de 1000 se rechaza con las cifras actuales
	_, err = f.addItem(sales, product, 1000)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(70), stockErr.Current)
	assert.Equal(t, int64(1000), stockErr.Requested)
	assert.Equal(t, int64(70), f.stockOf(t, product), "el rechazo no deja rastro")

	items, err := f.guard.ListByOrder(f.ctx, f.company, sales)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestOrderItemGuard_IncompatibleWarehouse(t *testing.T) {
	f := newFixture(t, typePtr(entity.ProductTypeSolid))
	liquid := f.product(t, entity.ProductTypeLiquid)
	order := f.order(t, entity.OrderTypePurchase)

	_, err := f.addItem(order, liquid, 10)
	var incompatible *domain.IncompatibleTypesError
	require.True(t, errors.As(err, &incompatible))
	assert.Equal(t, "liquid", incompatible.ProductType)
	assert.Equal(t, "solid", incompatible.WarehouseType)
	assert.Zero(t, f.stockOf(t, liquid))
}

func TestOrderItemGuard_UnknownReferences(t *testing.T) {
	f := newFixture(t, nil)
	product := f.product(t, entity.ProductTypeSolid)

	// Caso 1: orden inexistente
	_, err := f.addItem("00000000-0000-0000-0000-000000000000", product, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Caso 2: producto inexistente
	_, err = f.addItem(f.order(t, entity.OrderTypePurchase), "00000000-0000-0000-0000-000000000000", 1)
	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, domain.EntityProduct, nf.Entity)

	// Caso 3: cantidad no positiva
	_, err = f.addItem(f.order(t, entity.OrderTypePurchase), product, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderItemGuard_ConcurrentDebitsNeverOversell(t *testing.T) {
	f := newFixture(t, nil)
	product := f.product(t, entity.ProductTypeSolid)
	_, err := f.addItem(f.order(t, entity.OrderTypePurchase), product, 100)
	require.NoError(t, err)

	orders := []string{f.order(t, entity.OrderTypeSales), f.order(t, entity.OrderTypeTransfer)}
	results := make([]error, len(orders))
	var g errgroup.Group
	for i, o := range orders {
		g.Go(func() error {
			_, results[i] = f.addItem(o, product, 70)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var ok, rejected int
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			rejected++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, int64(30), f.stockOf(t, product))
}

func TestOrderItemGuard_UpdateRetractsPreviousEffect(t *testing.T) {
	f := newFixture(t, nil)
	product := f.product(t, entity.ProductTypeSolid)
	_, err := f.addItem(f.order(t, entity.OrderTypePurchase), product, 100)
	require.NoError(t, err)
	sale, err := f.addItem(f.order(t, entity.OrderTypeSales), product, 60)
	require.NoError(t, err)

	// Caso 1: subir la venta a 100 cabe porque se retira el efecto previo de 60
	qty := int64(100)
	_, err = f.guard.Update(f.ctx, f.company, sale.ID, dto.UpdateOrderItemRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Zero(t, f.stockOf(t, product))

	// Caso 2: subir a 101 excede
	qty = 101
	_, err = f.guard.Update(f.ctx, f.company, sale.ID, dto.UpdateOrderItemRequest{Quantity: &qty})
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(100), stockErr.Current)
	assert.Equal(t, int64(101), stockErr.Requested)
}

func TestOrderItemGuard_PurchaseReductionIsChecked(t *testing.T) {
	f := newFixture(t, nil)
	product := f.product(t, entity.ProductTypeSolid)
	purchase, err := f.addItem(f.order(t, entity.OrderTypePurchase), product, 100)
	require.NoError(t, err)
	_, err = f.addItem(f.order(t, entity.OrderTypeSales), product, 80)
	require.NoError(t, err)

	// Caso 1: reducir la compra a 50 dejaría -30
	qty := int64(50)
	_, err = f.guard.Update(f.ctx, f.company, purchase.ID, dto.UpdateOrderItemRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Caso 2: eliminar la compra también
	deleted, err := f.guard.Delete(f.ctx, f.company, purchase.ID)
	assert.False(t, deleted)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(20), f.stockOf(t, product))
}

func TestOrderItemGuard_ProductChangeMovesBalance(t *testing.T) {
	f := newFixture(t, nil)
	a := f.product(t, entity.ProductTypeSolid)
	b := f.product(t, entity.ProductTypeSolid)
	item, err := f.addItem(f.order(t, entity.OrderTypePurchase), a, 40)
	require.NoError(t, err)

	_, err = f.guard.Update(f.ctx, f.company, item.ID, dto.UpdateOrderItemRequest{ProductID: &b})
	require.NoError(t, err)
	assert.Zero(t, f.stockOf(t, a))
	assert.Equal(t, int64(40), f.stockOf(t, b))
}

func TestOrderItemGuard_DeleteExcludesFromLedger(t *testing.T) {
	f := newFixture(t, nil)
	product := f.product(t, entity.ProductTypeSolid)
	_, err := f.addItem(f.order(t, entity.OrderTypePurchase), product, 100)
	require.NoError(t, err)
	sale, err := f.addItem(f.order(t, entity.OrderTypeSales), product, 30)
	require.NoError(t, err)

	deleted, err := f.guard.Delete(f.ctx, f.company, sale.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, int64(100), f.stockOf(t, product))

	// Caso: segunda eliminación no encuentra el ítem
	deleted, err = f.guard.Delete(f.ctx, f.company, sale.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = f.guard.GetByID(f.ctx, f.company, sale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderItemGuard_OtherCompanyCannotSeeItem(t *testing.T) {
	f := newFixture(t, nil)
	product := f.product(t, entity.ProductTypeSolid)
	item, err := f.addItem(f.order(t, entity.OrderTypePurchase), product, 5)
	require.NoError(t, err)

	_, err = f.guard.GetByID(f.ctx, "11111111-1111-1111-1111-111111111111", item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	deleted, err := f.guard.Delete(f.ctx, "11111111-1111-1111-1111-111111111111", item.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
