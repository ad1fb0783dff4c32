package postgres

import (
	"context"
	"fmt"
	"time"


	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.OrderItemRepository = (*OrderItemRepo)(nil)

// OrderItemRepo implementación del puerto OrderItemRepository sobre PostgreSQL (usable con pool o tx).
type OrderItemRepo struct {
	q Querier
}

// NewOrderItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderItemRepository(q Querier) *OrderItemRepo {
	return &OrderItemRepo{q: q}
}

const orderItemColumns = `id, order_id, product_id, quantity, price, created_at, updated_at, deleted_at`

func scanOrderItem(s scanner) (*entity.OrderItem, error) {
	var it entity.OrderItem
	if err := s.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price,
		&it.CreatedAt, &it.UpdatedAt, &it.DeletedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *OrderItemRepo) Create(ctx context.Context, it *entity.OrderItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_items (id, order_id, product_id, quantity, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		it.ID, it.OrderID, it.ProductID, it.Quantity, it.Price, it.CreatedAt, it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

func (r *OrderItemRepo) GetByID(ctx context.Context, id string) (*entity.OrderItem, error) {
	it, err := scanOrderItem(r.q.QueryRow(ctx, `SELECT `+orderItemColumns+` FROM order_items WHERE id = $1`, id))
	if err != nil {
		if noRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order item: %w", err)
	}
	return it, nil
}

func (r *OrderItemRepo) Update(ctx context.Context, it *entity.OrderItem) error {
	_, err := r.q.Exec(ctx, `
		UPDATE order_items SET product_id = $2, quantity = $3, price = $4, updated_at = $5 WHERE id = $1`,
		it.ID, it.ProductID, it.Quantity, it.Price, it.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order item: %w", err)
	}
	return nil
}

func (r *OrderItemRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE order_items SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("delete order item: %w", err)
	}
	return nil
}

func (r *OrderItemRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+orderItemColumns+` FROM order_items
		WHERE order_id = $1 AND deleted_at IS NULL ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		it, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func (r *OrderItemRepo) CountActiveByProduct(ctx context.Context, productID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.product_id = $1 AND oi.deleted_at IS NULL AND o.deleted_at IS NULL`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count order items by product: %w", err)
	}
	return n, nil
}

func (r *OrderItemRepo) ProductIDsByWarehouse(ctx context.Context, warehouseID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT DISTINCT oi.product_id::text FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.warehouse_id = $1 AND oi.deleted_at IS NULL AND o.deleted_at IS NULL
		ORDER BY 1`, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("products by warehouse: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
