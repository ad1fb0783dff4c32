package inventory

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/ledger"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// CompatibilityValidator verifica que un producto pueda almacenarse en la bodega de una orden.
type CompatibilityValidator struct {
	tx TxRunner
}

// NewCompatibilityValidator construye el validador.
func NewCompatibilityValidator(tx TxRunner) *CompatibilityValidator {
	return &CompatibilityValidator{tx: tx}
}

// Check devuelve nil si el producto es compatible con la bodega de la orden; si no, NotFoundError
// (orden, bodega o producto, en ese orden) o IncompatibleTypesError. No escribe nada.
func (v *CompatibilityValidator) Check(ctx context.Context, companyID, productID, orderID string) error {
	return v.tx.Run(ctx, func(r repository.Repos) error {
		order, err := ActiveOrder(ctx, r, companyID, orderID)
		if err != nil {
			return err
		}
		_, err = CheckOrderProduct(ctx, r, order, productID)
		return err
	})
}

// CheckOrderProduct carga bodega y producto de la orden y aplica la regla de compatibilidad.
// Dentro de una transacción toma un bloqueo compartido sobre la bodega para que su tipo no cambie
// antes del commit. El producto debe pertenecer a la empresa de la orden.
func CheckOrderProduct(ctx context.Context, r repository.Repos, order *entity.Order, productID string) (*entity.Product, error) {
	if err := r.Ledger.LockWarehouse(ctx, order.WarehouseID, false); err != nil {
		return nil, err
	}
	warehouse, err := ActiveWarehouse(ctx, r, order.CompanyID, order.WarehouseID)
	if err != nil {
		return nil, err
	}
	product, err := ActiveProduct(ctx, r, order.CompanyID, productID)
	if err != nil {
		return nil, err
	}
	if err := ledger.CheckCompatibility(product, warehouse); err != nil {
		return nil, err
	}
	return product, nil
}
