package repository

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// OrderFilter criterios de listado. Campos vacíos no filtran.
type OrderFilter struct {
	CompanyID   string
	Type        entity.OrderType
	CustomerID  string
	WarehouseID string
}

// OrderRepository puerto de persistencia para órdenes.
type OrderRepository interface {
	// Create devuelve domain.ErrDuplicateNumber si el número ya existe en la empresa.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// Update modifica cliente, bodega y fecha. Número y tipo son inmutables.
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, filter OrderFilter, limit, offset int) ([]*entity.Order, int, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
