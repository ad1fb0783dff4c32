package ledger_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/ledger"
)

func entry(orderType entity.OrderType, productID string, qty int64) ledger.Entry {
	return ledger.Entry{OrderID: "o-" + productID, OrderType: orderType, ProductID: productID, Quantity: qty, Price: decimal.NewFromInt(1)}
}

func TestStockOf_SignedSum(t *testing.T) {
	entries := []ledger.Entry{
		entry(entity.OrderTypePurchase, "p1", 100),
		entry(entity.OrderTypeSales, "p1", 30),
		entry(entity.OrderTypeTransfer, "p1", 5),
		entry(entity.OrderTypePurchase, "p2", 7),
	}

	assert.Equal(t, int64(65), ledger.StockOf("p1", entries))
	assert.Equal(t, int64(7), ledger.StockOf("p2", entries))
	assert.Equal(t, int64(0), ledger.StockOf("desconocido", entries), "producto sin movimientos tiene stock 0")
}

func TestBalances_OrderIndependent(t *testing.T) {
	entries := []ledger.Entry{
		entry(entity.OrderTypePurchase, "p1", 100),
		entry(entity.OrderTypeSales, "p1", 30),
		entry(entity.OrderTypePurchase, "p2", 12),
		entry(entity.OrderTypeTransfer, "p2", 2),
		entry(entity.OrderTypeSales, "p1", 1),
	}
	want := ledger.Balances(entries)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]ledger.Entry(nil), entries...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, ledger.Balances(shuffled))
	}
	assert.Equal(t, int64(69), want["p1"])
	assert.Equal(t, int64(10), want["p2"])
}

func TestEntry_UnknownOrderTypeHasNoEffect(t *testing.T) {
	assert.Equal(t, int64(0), entry(entity.OrderType("adjustment"), "p1", 50).Delta())
}

func TestProjection_Check(t *testing.T) {
	// Caso 1: débito que cabe en el saldo.
	assert.NoError(t, ledger.Projection{ProductID: "p", Current: 100, Apply: -30}.Check())

	// Caso 2: débito que excede el saldo reporta saldo actual y cantidad pedida.
	err := ledger.Projection{ProductID: "p", Current: 70, Apply: -1000}.Check()
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(70), stockErr.Current)
	assert.Equal(t, int64(1000), stockErr.Requested)

	// Caso 3: editar un débito de 30 a 200 con saldo 70: disponible 100.
	err = ledger.Projection{ProductID: "p", Current: 70, Retract: -30, Apply: -200}.Check()
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(100), stockErr.Current)
	assert.Equal(t, int64(200), stockErr.Requested)

	// Caso 4: retirar una compra de 100 con saldo 70.
	err = ledger.Projection{ProductID: "p", Current: 70, Retract: 100}.Check()
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int64(70), stockErr.Current)
	assert.Equal(t, int64(100), stockErr.Requested)

	// Caso 5: una escritura que aumenta el saldo nunca se rechaza.
	assert.NoError(t, ledger.Projection{ProductID: "p", Current: 0, Apply: 5}.Check())
	assert.NoError(t, ledger.Projection{ProductID: "p", Current: 10, Retract: -10}.Check())

	// Caso 6: el saldo exacto a cero es válido.
	assert.NoError(t, ledger.Projection{ProductID: "p", Current: 70, Apply: -70}.Check())
}
