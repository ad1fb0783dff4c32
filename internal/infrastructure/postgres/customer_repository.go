package postgres

import (
	"context"
	"fmt"
	"time"


	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, company_id, type, name, email, phone, created_at, updated_at, deleted_at`

func scanCustomer(s scanner) (*entity.Customer, error) {
	var (
		c   entity.Customer
		typ string
	)
	if err := s.Scan(&c.ID, &c.CompanyID, &typ, &c.Name, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
		return nil, err
	}
	c.Type = entity.CustomerType(typ)
	return &c, nil
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO customers (id, company_id, type, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.CompanyID, string(c.Type), c.Name, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		if noRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `
		UPDATE customers SET type = $2, name = $3, email = $4, phone = $5, updated_at = $6 WHERE id = $1`,
		c.ID, string(c.Type), c.Name, c.Email, c.Phone, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

const customerFilter = `
	WHERE deleted_at IS NULL
	  AND ($1::uuid IS NULL OR company_id = $1)
	  AND ($2::text IS NULL OR type = $2)
	  AND ($3::text IS NULL OR name ILIKE '%' || $3 || '%')`

func (r *CustomerRepo) List(ctx context.Context, f repository.CustomerFilter, limit, offset int) ([]*entity.Customer, int, error) {
	args := []any{nullableID(f.CompanyID), nullableText(string(f.Type)), nullableText(f.Search)}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+customerFilter, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+customerColumns+` FROM customers`+customerFilter+`
		ORDER BY created_at DESC, id LIMIT $4 OFFSET $5`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Customer, 0, limit)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

func (r *CustomerRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE customers SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
