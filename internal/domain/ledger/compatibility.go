package ledger

import (
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// Accepts indica si la bodega puede almacenar productos del tipo dado.
func Accepts(w *entity.Warehouse, t entity.ProductType) bool {
	return w.Type == nil || *w.Type == t
}

// CheckCompatibility devuelve IncompatibleTypesError si la bodega tiene tipo y no coincide con el del producto.
func CheckCompatibility(p *entity.Product, w *entity.Warehouse) error {
	if Accepts(w, p.Type) {
		return nil
	}
	return &domain.IncompatibleTypesError{
		ProductName:   p.Name,
		ProductType:   string(p.Type),
		WarehouseName: w.Name,
		WarehouseType: w.TypeLabel(),
	}
}
