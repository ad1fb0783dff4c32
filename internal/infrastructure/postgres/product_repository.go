package postgres

import (
	"context"
	"fmt"
	"time"


	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, name, code, price, type, created_at, updated_at, deleted_at`

func scanProduct(s scanner) (*entity.Product, error) {
	var (
		p   entity.Product
		typ string
	)
	if err := s.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Code, &p.Price, &typ, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
		return nil, err
	}
	p.Type = entity.ProductType(typ)
	return &p, nil
}

// Create persiste un nuevo producto. Código repetido en la empresa -> domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, company_id, name, code, price, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.CompanyID, p.Name, p.Code, p.Price, string(p.Type), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, incluso si está eliminado.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if noRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByCode obtiene un producto activo por empresa y código.
func (r *ProductRepo) GetByCode(ctx context.Context, companyID, code string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE company_id = $1 AND code = $2 AND deleted_at IS NULL`, companyID, code))
	if err != nil {
		if noRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		UPDATE products SET name = $2, code = $3, price = $4, type = $5, updated_at = $6 WHERE id = $1`,
		p.ID, p.Name, p.Code, p.Price, string(p.Type), p.UpdatedAt)
	if err != nil {
		if _, ok := uniqueViolation(err); ok {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

const productFilter = `
	WHERE deleted_at IS NULL
	  AND ($1::uuid IS NULL OR company_id = $1)
	  AND ($2::text IS NULL OR type = $2)
	  AND ($3::text IS NULL OR name ILIKE '%' || $3 || '%')`

// List lista productos activos con filtros y paginación.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	args := []any{nullableID(f.CompanyID), nullableText(string(f.Type)), nullableText(f.Search)}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+productFilter, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products`+productFilter+`
		ORDER BY created_at DESC, id LIMIT $4 OFFSET $5`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// CountByType cuenta productos activos por tipo.
func (r *ProductRepo) CountByType(ctx context.Context, companyID string) (map[entity.ProductType]int64, error) {
	rows, err := r.q.Query(ctx, `
		SELECT type, COUNT(*) FROM products
		WHERE deleted_at IS NULL AND ($1::uuid IS NULL OR company_id = $1)
		GROUP BY type`, nullableID(companyID))
	if err != nil {
		return nil, fmt.Errorf("count products by type: %w", err)
	}
	defer rows.Close()
	out := make(map[entity.ProductType]int64)
	for rows.Next() {
		var (
			typ string
			n   int64
		)
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, fmt.Errorf("scan product count: %w", err)
		}
		out[entity.ProductType(typ)] = n
	}
	return out, rows.Err()
}

func (r *ProductRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE products SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
