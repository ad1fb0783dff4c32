package repository

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// WarehouseFilter criterios de listado. Campos vacíos no filtran.
type WarehouseFilter struct {
	CompanyID string
	Type      entity.ProductType
	Search    string
}

// WarehouseRepository puerto de persistencia para bodegas.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	List(ctx context.Context, filter WarehouseFilter, limit, offset int) ([]*entity.Warehouse, int, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
