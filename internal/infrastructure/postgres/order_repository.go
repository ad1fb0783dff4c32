package postgres

import (
	"context"
	"fmt"
	"time"


	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, company_id, number, type, customer_id, warehouse_id, date, created_at, updated_at, deleted_at`

func scanOrder(s scanner) (*entity.Order, error) {
	var (
		o   entity.Order
		typ string
	)
	if err := s.Scan(&o.ID, &o.CompanyID, &o.Number, &typ, &o.CustomerID, &o.WarehouseID, &o.Date,
		&o.CreatedAt, &o.UpdatedAt, &o.DeletedAt); err != nil {
		return nil, err
	}
	o.Type = entity.OrderType(typ)
	return &o, nil
}

// Create inserta la orden. Número repetido en la empresa -> domain.ErrDuplicateNumber.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (id, company_id, number, type, customer_id, warehouse_id, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID, o.CompanyID, o.Number, string(o.Type), o.CustomerID, o.WarehouseID, o.Date, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if constraint == "orders_company_number_key" {
				return domain.ErrDuplicateNumber
			}
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if noRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		UPDATE orders SET customer_id = $2, warehouse_id = $3, date = $4, updated_at = $5 WHERE id = $1`,
		o.ID, o.CustomerID, o.WarehouseID, o.Date, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

const orderFilter = `
	WHERE deleted_at IS NULL
	  AND ($1::uuid IS NULL OR company_id = $1)
	  AND ($2::text IS NULL OR type = $2)
	  AND ($3::uuid IS NULL OR customer_id = $3)
	  AND ($4::uuid IS NULL OR warehouse_id = $4)`

func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter, limit, offset int) ([]*entity.Order, int, error) {
	args := []any{nullableID(f.CompanyID), nullableText(string(f.Type)), nullableID(f.CustomerID), nullableID(f.WarehouseID)}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+orderFilter, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM orders`+orderFilter+`
		ORDER BY created_at DESC, id LIMIT $5 OFFSET $6`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Order, 0, limit)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, total, rows.Err()
}

func (r *OrderRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE orders SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
