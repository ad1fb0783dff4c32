package repository

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// CustomerFilter criterios de listado. Campos vacíos no filtran.
type CustomerFilter struct {
	CompanyID string
	Type      entity.CustomerType
	Search    string // coincidencia parcial por nombre, sin distinguir mayúsculas
}

// CustomerRepository puerto de persistencia para clientes y proveedores.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	List(ctx context.Context, filter CustomerFilter, limit, offset int) ([]*entity.Customer, int, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
