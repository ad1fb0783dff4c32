package postgres

import (
	"context"
	"fmt"
	"time"


	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL (usable con pool o tx).
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `id, company_id, name, type, address, created_at, updated_at, deleted_at`

func scanWarehouse(s scanner) (*entity.Warehouse, error) {
	var (
		w   entity.Warehouse
		typ *string
	)
	if err := s.Scan(&w.ID, &w.CompanyID, &w.Name, &typ, &w.Address, &w.CreatedAt, &w.UpdatedAt, &w.DeletedAt); err != nil {
		return nil, err
	}
	if typ != nil {
		t := entity.ProductType(*typ)
		w.Type = &t
	}
	return &w, nil
}

func warehouseType(w *entity.Warehouse) *string {
	if w.Type == nil {
		return nil
	}
	s := string(*w.Type)
	return &s
}

func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO warehouses (id, company_id, name, type, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		w.ID, w.CompanyID, w.Name, warehouseType(w), w.Address, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	w, err := scanWarehouse(r.q.QueryRow(ctx, `SELECT `+warehouseColumns+` FROM warehouses WHERE id = $1`, id))
	if err != nil {
		if noRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return w, nil
}

func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	_, err := r.q.Exec(ctx, `
		UPDATE warehouses SET name = $2, type = $3, address = $4, updated_at = $5 WHERE id = $1`,
		w.ID, w.Name, warehouseType(w), w.Address, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

const warehouseFilter = `
	WHERE deleted_at IS NULL
	  AND ($1::uuid IS NULL OR company_id = $1)
	  AND ($2::text IS NULL OR type = $2)
	  AND ($3::text IS NULL OR name ILIKE '%' || $3 || '%')`

func (r *WarehouseRepo) List(ctx context.Context, f repository.WarehouseFilter, limit, offset int) ([]*entity.Warehouse, int, error) {
	args := []any{nullableID(f.CompanyID), nullableText(string(f.Type)), nullableText(f.Search)}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM warehouses`+warehouseFilter, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count warehouses: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+warehouseColumns+` FROM warehouses`+warehouseFilter+`
		ORDER BY created_at DESC, id LIMIT $4 OFFSET $5`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Warehouse, 0, limit)
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, w)
	}
	return list, total, rows.Err()
}

func (r *WarehouseRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE warehouses SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}
