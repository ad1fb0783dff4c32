package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

// OrderItemGuard única vía de escritura de ítems de orden. Cada mutación valida compatibilidad y
// proyección de stock y escribe dentro de una misma transacción, con los productos afectados
// bloqueados. Un rechazo no deja rastro.
type OrderItemGuard struct {
	tx    TxRunner
	repos repository.Repos
	log   *logger.Logger
}

// NewOrderItemGuard construye el guardián. repos se usa solo para lecturas fuera de transacción.
func NewOrderItemGuard(tx TxRunner, repos repository.Repos, log *logger.Logger) *OrderItemGuard {
	if log == nil {
		log = logger.Nop()
	}
	return &OrderItemGuard{tx: tx, repos: repos, log: log.Named("order_item_guard")}
}

func validateLine(quantity int64, price decimal.Decimal) error {
	if quantity <= 0 {
		return domain.Invalid("quantity", "debe ser mayor que cero")
	}
	if price.IsNegative() {
		return domain.Invalid("price", "no puede ser negativo")
	}
	return nil
}

// Create agrega un ítem a una orden activa de la empresa.
func (g *OrderItemGuard) Create(ctx context.Context, companyID string, in dto.CreateOrderItemRequest) (*dto.OrderItemResponse, error) {
	if in.Price == nil {
		return nil, domain.Invalid("price", "es obligatorio")
	}
	if err := validateLine(in.Quantity, *in.Price); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &entity.OrderItem{
		ID:        uuid.New().String(),
		OrderID:   in.OrderID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Price:     *in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := g.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Ledger.LockOrder(ctx, item.OrderID, false); err != nil {
			return err
		}
		order, err := ActiveOrder(ctx, r, companyID, item.OrderID)
		if err != nil {
			return err
		}
		if err := r.Ledger.LockProducts(ctx, item.ProductID); err != nil {
			return err
		}
		if _, err := CheckOrderProduct(ctx, r, order, item.ProductID); err != nil {
			return err
		}
		if err := ProjectStock(ctx, r, item.ProductID, 0, order.Type.StockSign()*item.Quantity); err != nil {
			return err
		}
		return r.OrderItems.Create(ctx, item)
	})
	if err != nil {
		g.rejected("create", item.OrderID, item.ProductID, err)
		return nil, err
	}
	g.log.Debug().Str("item_id", item.ID).Str("order_id", item.OrderID).Int64("quantity", item.Quantity).Msg("ítem creado")
	return ToOrderItemResponse(item), nil
}

// Update modifica producto, cantidad o precio de un ítem activo. El efecto anterior del ítem se
// retira del saldo antes de aplicar el nuevo.
func (g *OrderItemGuard) Update(ctx context.Context, companyID, id string, in dto.UpdateOrderItemRequest) (*dto.OrderItemResponse, error) {
	if in.Quantity != nil && *in.Quantity <= 0 {
		return nil, domain.Invalid("quantity", "debe ser mayor que cero")
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.Invalid("price", "no puede ser negativo")
	}

	var (
		out *entity.OrderItem
		err error
	)
	for attempt := 1; attempt <= updateAttempts; attempt++ {
		out, err = g.update(ctx, companyID, id, in)
		if !errors.Is(err, errItemMoved) {
			break
		}
		g.log.Debug().Str("item_id", id).Int("attempt", attempt).Msg("el producto del ítem cambió; reintento")
	}
	if errors.Is(err, errItemMoved) {
		err = fmt.Errorf("%w: el ítem %s cambió durante la actualización", domain.ErrConflict, id)
	}
	if err != nil {
		g.rejected("update", id, "", err)
		return nil, err
	}
	return ToOrderItemResponse(out), nil
}

// updateAttempts transacciones que Update intenta antes de rendirse ante cambios concurrentes del
// producto del ítem.
const updateAttempts = 3

var errItemMoved = errors.New("el producto del ítem cambió")

// update una transacción. Los productos se bloquean en una sola llamada (orden ascendente); si al
// releer el ítem ya apunta a otro producto, la transacción se descarta con errItemMoved en lugar de
// tomar un bloqueo fuera de orden.
func (g *OrderItemGuard) update(ctx context.Context, companyID, id string, in dto.UpdateOrderItemRequest) (*entity.OrderItem, error) {
	var out *entity.OrderItem
	err := g.tx.Run(ctx, func(r repository.Repos) error {
		current, err := activeItem(ctx, r, id)
		if err != nil {
			return err
		}
		if err := r.Ledger.LockOrder(ctx, current.OrderID, false); err != nil {
			return err
		}
		order, err := ActiveOrder(ctx, r, companyID, current.OrderID)
		if err != nil {
			return domain.NotFound(domain.EntityOrderItem, id)
		}

		newProduct := current.ProductID
		if in.ProductID != nil {
			newProduct = *in.ProductID
		}
		if err := r.Ledger.LockProducts(ctx, current.ProductID, newProduct); err != nil {
			return err
		}
		// releer con los productos bloqueados
		old, err := activeItem(ctx, r, id)
		if err != nil {
			return err
		}
		if old.ProductID != current.ProductID {
			return errItemMoved
		}

		next := *old
		next.ProductID = newProduct
		if in.Quantity != nil {
			next.Quantity = *in.Quantity
		}
		if in.Price != nil {
			next.Price = *in.Price
		}
		next.UpdatedAt = time.Now().UTC()

		sign := order.Type.StockSign()
		if next.ProductID == old.ProductID {
			if err := ProjectStock(ctx, r, old.ProductID, sign*old.Quantity, sign*next.Quantity); err != nil {
				return err
			}
		} else {
			if _, err := CheckOrderProduct(ctx, r, order, next.ProductID); err != nil {
				return err
			}
			if err := ProjectStock(ctx, r, old.ProductID, sign*old.Quantity, 0); err != nil {
				return err
			}
			if err := ProjectStock(ctx, r, next.ProductID, 0, sign*next.Quantity); err != nil {
				return err
			}
		}
		if err := r.OrderItems.Update(ctx, &next); err != nil {
			return err
		}
		out = &next
		return nil
	})
	return out, err
}

// Delete elimina lógicamente un ítem. Devuelve false si el ítem no existe, ya fue eliminado o es
// de otra empresa. Quitar un ítem de compra se valida contra el saldo.
func (g *OrderItemGuard) Delete(ctx context.Context, companyID, id string) (bool, error) {
	err := g.tx.Run(ctx, func(r repository.Repos) error {
		current, err := activeItem(ctx, r, id)
		if err != nil {
			return err
		}
		if err := r.Ledger.LockOrder(ctx, current.OrderID, false); err != nil {
			return err
		}
		order, err := ActiveOrder(ctx, r, companyID, current.OrderID)
		if err != nil {
			return domain.NotFound(domain.EntityOrderItem, id)
		}
		if err := r.Ledger.LockProducts(ctx, current.ProductID); err != nil {
			return err
		}
		item, err := activeItem(ctx, r, id)
		if err != nil {
			return err
		}
		if err := ProjectStock(ctx, r, item.ProductID, order.Type.StockSign()*item.Quantity, 0); err != nil {
			return err
		}
		return r.OrderItems.SoftDelete(ctx, id, time.Now().UTC())
	})
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		g.rejected("delete", id, "", err)
		return false, err
	}
	return true, nil
}

// GetByID ítem activo de una orden activa de la empresa.
func (g *OrderItemGuard) GetByID(ctx context.Context, companyID, id string) (*dto.OrderItemResponse, error) {
	item, err := activeItem(ctx, g.repos, id)
	if err != nil {
		return nil, err
	}
	if _, err := ActiveOrder(ctx, g.repos, companyID, item.OrderID); err != nil {
		return nil, domain.NotFound(domain.EntityOrderItem, id)
	}
	return ToOrderItemResponse(item), nil
}

// ListByOrder ítems activos de la orden.
func (g *OrderItemGuard) ListByOrder(ctx context.Context, companyID, orderID string) ([]dto.OrderItemResponse, error) {
	if _, err := ActiveOrder(ctx, g.repos, companyID, orderID); err != nil {
		return nil, err
	}
	items, err := g.repos.OrderItems.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *ToOrderItemResponse(it))
	}
	return out, nil
}

func (g *OrderItemGuard) rejected(op, ref, productID string, err error) {
	var stockErr *domain.InsufficientStockError
	ev := g.log.Debug().Str("op", op).Str("ref", ref)
	if productID != "" {
		ev = ev.Str("product_id", productID)
	}
	if errors.As(err, &stockErr) {
		ev = ev.Int64("current", stockErr.Current).Int64("requested", stockErr.Requested)
	}
	ev.Err(err).Msg("mutación de ítem rechazada")
}

func activeItem(ctx context.Context, r repository.Repos, id string) (*entity.OrderItem, error) {
	item, err := r.OrderItems.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.IsDeleted() {
		return nil, domain.NotFound(domain.EntityOrderItem, id)
	}
	return item, nil
}

// ToOrderItemResponse mapea un ítem a su DTO de salida.
func ToOrderItemResponse(it *entity.OrderItem) *dto.OrderItemResponse {
	return &dto.OrderItemResponse{
		ID:        it.ID,
		OrderID:   it.OrderID,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
		Price:     it.Price,
		Subtotal:  it.LineTotal(),
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}
