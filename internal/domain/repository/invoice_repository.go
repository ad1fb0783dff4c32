package repository

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// InvoiceFilter criterios de listado. Campos vacíos no filtran.
type InvoiceFilter struct {
	CompanyID string
	Status    entity.InvoiceStatus
}

// InvoiceRepository puerto de persistencia para facturas.
type InvoiceRepository interface {
	// Create devuelve domain.ErrDuplicateNumber si el número ya existe en la empresa.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetByOrderID(ctx context.Context, orderID string) (*entity.Invoice, error)
	// UpdateStatus cambia solo el estado.
	UpdateStatus(ctx context.Context, invoice *entity.Invoice) error
	List(ctx context.Context, filter InvoiceFilter, limit, offset int) ([]*entity.Invoice, int, error)
}
