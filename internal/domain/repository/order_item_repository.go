package repository

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// OrderItemRepository puerto de persistencia para ítems de orden.
// Las escrituras solo deben hacerse a través del guardián de inventario.
type OrderItemRepository interface {
	Create(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, id string) (*entity.OrderItem, error)
	Update(ctx context.Context, item *entity.OrderItem) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	// ListByOrder ítems activos de la orden.
	ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
	// CountActiveByProduct ítems activos de órdenes activas que referencian el producto.
	CountActiveByProduct(ctx context.Context, productID string) (int64, error)
	// ProductIDsByWarehouse productos distintos con ítems activos en órdenes activas de la bodega.
	ProductIDsByWarehouse(ctx context.Context, warehouseID string) ([]string, error)
}
