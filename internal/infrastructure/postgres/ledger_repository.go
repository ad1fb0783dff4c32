package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// stockDeltaSQL genera el CASE con el signo de cada tipo de orden a partir de la tabla de despacho
// de entity.OrderType. Tipos con signo 0 caen en el ELSE.
func stockDeltaSQL(typeCol, qtyCol string) string {
	var b strings.Builder
	b.WriteString("CASE")
	for _, t := range entity.OrderTypes() {
		switch t.StockSign() {
		case 1:
			fmt.Fprintf(&b, " WHEN %s = '%s' THEN %s", typeCol, t, qtyCol)
		case -1:
			fmt.Fprintf(&b, " WHEN %s = '%s' THEN -%s", typeCol, t, qtyCol)
		}
	}
	b.WriteString(" ELSE 0 END")
	return b.String()
}

var currentStockQuery = `
	SELECT COALESCE(SUM(` + stockDeltaSQL("o.type", "oi.quantity") + `), 0)::bigint
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id
	WHERE oi.product_id = $1 AND oi.deleted_at IS NULL AND o.deleted_at IS NULL`

// LedgerRepo lecturas y bloqueos del libro sobre PostgreSQL.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. LockProducts solo tiene efecto dentro de una tx.
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// LockProducts SELECT ... FOR UPDATE sobre cada producto, en orden ascendente de id para que dos
// transacciones que tocan los mismos productos no se bloqueen mutuamente.
func (r *LedgerRepo) LockProducts(ctx context.Context, productIDs ...string) error {
	ids := slices.Clone(productIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	for _, id := range ids {
		var locked string
		err := r.q.QueryRow(ctx, `SELECT id::text FROM products WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("lock product %s: %w", id, err)
		}
	}
	return nil
}

// LockOrder SELECT ... FOR SHARE / FOR UPDATE sobre la orden.
func (r *LedgerRepo) LockOrder(ctx context.Context, orderID string, exclusive bool) error {
	return r.lockRow(ctx, "orders", orderID, exclusive)
}

// LockWarehouse SELECT ... FOR SHARE / FOR UPDATE sobre la bodega.
func (r *LedgerRepo) LockWarehouse(ctx context.Context, warehouseID string, exclusive bool) error {
	return r.lockRow(ctx, "warehouses", warehouseID, exclusive)
}

func (r *LedgerRepo) lockRow(ctx context.Context, table, id string, exclusive bool) error {
	mode := "FOR SHARE"
	if exclusive {
		mode = "FOR UPDATE"
	}
	var locked string
	err := r.q.QueryRow(ctx, fmt.Sprintf(`SELECT id::text FROM %s WHERE id = $1 %s`, table, mode), id).Scan(&locked)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("lock %s %s: %w", table, id, err)
	}
	return nil
}

// CurrentStock stock derivado del libro; producto sin movimientos = 0.
func (r *LedgerRepo) CurrentStock(ctx context.Context, productID string) (int64, error) {
	var stock int64
	if err := r.q.QueryRow(ctx, currentStockQuery, productID).Scan(&stock); err != nil {
		return 0, fmt.Errorf("current stock: %w", err)
	}
	return stock, nil
}
