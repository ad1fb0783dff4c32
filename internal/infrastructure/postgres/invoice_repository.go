package postgres

import (
	"context"
	"fmt"


	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación del puerto InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, order_id, number, date, status, created_at, updated_at, deleted_at`

func scanInvoice(s scanner) (*entity.Invoice, error) {
	var (
		inv    entity.Invoice
		status string
	)
	if err := s.Scan(&inv.ID, &inv.CompanyID, &inv.OrderID, &inv.Number, &inv.Date, &status,
		&inv.CreatedAt, &inv.UpdatedAt, &inv.DeletedAt); err != nil {
		return nil, err
	}
	inv.Status = entity.InvoiceStatus(status)
	return &inv, nil
}

// Create inserta la factura. Número repetido -> domain.ErrDuplicateNumber; segunda factura de la orden -> domain.ErrDuplicate.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO invoices (id, company_id, order_id, number, date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		inv.ID, inv.CompanyID, inv.OrderID, inv.Number, inv.Date, string(inv.Status), inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if constraint == "invoices_company_number_key" {
				return domain.ErrDuplicateNumber
			}
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
}

func (r *InvoiceRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE order_id = $1`, orderID)
}

func (r *InvoiceRepo) getOne(ctx context.Context, query, arg string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if noRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) UpdateStatus(ctx context.Context, inv *entity.Invoice) error {
	_, err := r.q.Exec(ctx, `UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1`,
		inv.ID, string(inv.Status), inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

const invoiceFilter = `
	WHERE deleted_at IS NULL
	  AND ($1::uuid IS NULL OR company_id = $1)
	  AND ($2::text IS NULL OR status = $2)`

func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter, limit, offset int) ([]*entity.Invoice, int, error) {
	args := []any{nullableID(f.CompanyID), nullableText(string(f.Status))}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`+invoiceFilter, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices`+invoiceFilter+`
		ORDER BY created_at DESC, id LIMIT $3 OFFSET $4`, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Invoice, 0, limit)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, total, rows.Err()
}
