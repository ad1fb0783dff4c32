package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/memory"
)

// lockRecorder registra cada llamada a LockProducts.
type lockRecorder struct {
	repository.LedgerRepository
	calls [][]string
}

func (l *lockRecorder) LockProducts(ctx context.Context, ids ...string) error {
	l.calls = append(l.calls, append([]string(nil), ids...))
	return l.LedgerRepository.LockProducts(ctx, ids...)
}

// movingItems simula otra transacción que cambia el producto del ítem entre la primera lectura y
// la relectura posterior a los bloqueos.
type movingItems struct {
	repository.OrderItemRepository
	moveTo string
	times  int
	reads  int
}

func (m *movingItems) GetByID(ctx context.Context, id string) (*entity.OrderItem, error) {
	it, err := m.OrderItemRepository.GetByID(ctx, id)
	m.reads++
	if err != nil || it == nil || m.reads%2 == 1 || m.times == 0 {
		return it, err
	}
	m.times--
	moved := *it
	moved.ProductID = m.moveTo
	return &moved, nil
}

type recordingTx struct {
	store  *memory.Store
	ledger *lockRecorder
	items  *movingItems
	runs   int
}

func (r *recordingTx) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	r.runs++
	return r.store.Run(ctx, func(repos repository.Repos) error {
		r.ledger.LedgerRepository = repos.Ledger
		r.items.OrderItemRepository = repos.OrderItems
		repos.Ledger = r.ledger
		repos.OrderItems = r.items
		return fn(repos)
	})
}

func newRecordingGuard(f *fixture, moveTo string, times int) (*inventory.OrderItemGuard, *recordingTx) {
	tx := &recordingTx{store: f.store, ledger: &lockRecorder{}, items: &movingItems{moveTo: moveTo, times: times}}
	return inventory.NewOrderItemGuard(tx, f.store.Repos(), nil), tx
}

func TestOrderItemGuard_UpdateLocksProductsInOneCall(t *testing.T) {
	f := newFixture(t, nil)
	a := f.product(t, entity.ProductTypeSolid)
	b := f.product(t, entity.ProductTypeSolid)
	c := f.product(t, entity.ProductTypeSolid)
	item, err := f.addItem(f.order(t, entity.OrderTypePurchase), a, 40)
	require.NoError(t, err)

	// Caso 1: el ítem cambia de producto una vez; la transacción se repite sin bloquear c
	guard, tx := newRecordingGuard(f, c, 1)
	_, err = guard.Update(f.ctx, f.company, item.ID, dto.UpdateOrderItemRequest{ProductID: &b})
	require.NoError(t, err)
	assert.Equal(t, 2, tx.runs)
	assert.Equal(t, [][]string{{a, b}, {a, b}}, tx.ledger.calls)
	assert.Zero(t, f.stockOf(t, a))
	assert.Equal(t, int64(40), f.stockOf(t, b))
	assert.Zero(t, f.stockOf(t, c))

	// Caso 2: si el ítem sigue cambiando se devuelve conflicto y el saldo no se mueve
	guard, tx = newRecordingGuard(f, c, 10)
	_, err = guard.Update(f.ctx, f.company, item.ID, dto.UpdateOrderItemRequest{ProductID: &a})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 3, tx.runs)
	for _, call := range tx.ledger.calls {
		assert.Equal(t, []string{b, a}, call)
	}
	assert.Equal(t, int64(40), f.stockOf(t, b))
	assert.Zero(t, f.stockOf(t, a))
}
