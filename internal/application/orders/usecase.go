// Package orders casos de uso de órdenes: alta con numeración y factura automática, consulta,
// actualización y eliminación con los chequeos de inventario correspondientes.
package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/application/billing"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/ledger"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

// DefaultNumberingRetries reintentos ante colisión de número si no se configura otro valor.
const DefaultNumberingRetries = 3

// OrderUseCase casos de uso de órdenes.
type OrderUseCase struct {
	tx      TxRunner
	repos   repository.Repos
	log     *logger.Logger
	retries int
	now     func() time.Time
}

// NewOrderUseCase construye el caso de uso. retries <= 0 usa DefaultNumberingRetries.
func NewOrderUseCase(tx TxRunner, repos repository.Repos, log *logger.Logger, retries int) *OrderUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if retries <= 0 {
		retries = DefaultNumberingRetries
	}
	return &OrderUseCase{
		tx:      tx,
		repos:   repos,
		log:     log.Named("orders"),
		retries: retries,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (fecha de creación y año de numeración).
func (uc *OrderUseCase) WithClock(now func() time.Time) *OrderUseCase {
	uc.now = now
	return uc
}

// Create registra una orden con el siguiente número de la empresa y, si es de venta, emite su
// factura pendiente en la misma transacción. Ante una colisión de número reintenta con el
// contador alineado al mayor número emitido.
func (uc *OrderUseCase) Create(ctx context.Context, companyID string, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	orderType := entity.OrderType(in.Type)
	if !orderType.Valid() {
		return nil, domain.Invalid("type", "debe ser sales, purchase o transfer")
	}

	now := uc.now()
	date := now
	if in.Date != nil {
		date = in.Date.UTC()
	}
	orderKey := ledger.SequenceKey{CompanyID: companyID, Kind: ledger.KindOrder, Year: now.Year()}
	invoiceKey := ledger.SequenceKey{CompanyID: companyID, Kind: ledger.KindInvoice, Year: now.Year()}

	var orderFloor, invoiceFloor int64
	for attempt := 1; ; attempt++ {
		order, invoice, err := uc.create(ctx, companyID, orderType, in, date, now, orderKey, invoiceKey, orderFloor, invoiceFloor)
		if err == nil {
			uc.log.Info().Str("order_id", order.ID).Str("number", order.Number).Str("type", string(order.Type)).Msg("orden creada")
			out := &dto.CreateOrderResponse{Order: *toOrderResponse(order)}
			if invoice != nil {
				out.Invoice = billing.ToInvoiceResponse(invoice)
			}
			return out, nil
		}
		if !errors.Is(err, domain.ErrDuplicateNumber) || attempt > uc.retries {
			return nil, err
		}
		uc.log.Warn().Int("attempt", attempt).Str("company_id", companyID).Msg("número de documento duplicado, reintentando")
		if orderFloor, err = uc.repos.Sequences.HighestIssued(ctx, orderKey); err != nil {
			return nil, err
		}
		if orderType.IssuesInvoice() {
			if invoiceFloor, err = uc.repos.Sequences.HighestIssued(ctx, invoiceKey); err != nil {
				return nil, err
			}
		}
	}
}

func (uc *OrderUseCase) create(ctx context.Context, companyID string, orderType entity.OrderType, in dto.CreateOrderRequest,
	date, now time.Time, orderKey, invoiceKey ledger.SequenceKey, orderFloor, invoiceFloor int64,
) (*entity.Order, *entity.Invoice, error) {
	var order *entity.Order
	var invoice *entity.Invoice
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		if _, err := inventory.ActiveCustomer(ctx, r, companyID, in.CustomerID); err != nil {
			return err
		}
		if _, err := inventory.ActiveWarehouse(ctx, r, companyID, in.WarehouseID); err != nil {
			return err
		}

		seq, err := r.Sequences.Next(ctx, orderKey, orderFloor)
		if err != nil {
			return err
		}
		order = &entity.Order{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			Number:      ledger.FormatNumber(orderKey, seq),
			Type:        orderType,
			CustomerID:  in.CustomerID,
			WarehouseID: in.WarehouseID,
			Date:        date,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := r.Orders.Create(ctx, order); err != nil {
			return err
		}
		if !orderType.IssuesInvoice() {
			return nil
		}

		seq, err = r.Sequences.Next(ctx, invoiceKey, invoiceFloor)
		if err != nil {
			return err
		}
		invoice = &entity.Invoice{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			OrderID:   order.ID,
			Number:    ledger.FormatNumber(invoiceKey, seq),
			Date:      order.Date,
			Status:    entity.InvoiceStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return r.Invoices.Create(ctx, invoice)
	})
	if err != nil {
		return nil, nil, err
	}
	return order, invoice, nil
}

// GetByID orden con sus ítems activos, total y factura.
func (uc *OrderUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.OrderDetailResponse, error) {
	order, err := inventory.ActiveOrder(ctx, uc.repos, companyID, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.repos.OrderItems.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderDetailResponse{
		OrderResponse: *toOrderResponse(order),
		Items:         make([]dto.OrderItemResponse, 0, len(items)),
		Total:         decimal.Zero,
	}
	for _, it := range items {
		out.Items = append(out.Items, *inventory.ToOrderItemResponse(it))
		out.Total = out.Total.Add(it.LineTotal())
	}
	if order.Type.IssuesInvoice() {
		inv, err := uc.repos.Invoices.GetByOrderID(ctx, id)
		if err != nil {
			return nil, err
		}
		if inv != nil {
			out.Invoice = billing.ToInvoiceResponse(inv)
		}
	}
	return out, nil
}

// List órdenes activas de la empresa, más recientes primero.
func (uc *OrderUseCase) List(ctx context.Context, filter repository.OrderFilter, page dto.PageRequest) (*dto.OrderListResponse, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.Invalid("type", "debe ser sales, purchase o transfer")
	}
	page.Normalize()
	list, total, err := uc.repos.Orders.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Update cambia cliente, fecha o bodega. Un cambio de bodega vuelve a validar la compatibilidad
// de todos los ítems activos contra la nueva bodega.
func (uc *OrderUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	var order *entity.Order
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Ledger.LockOrder(ctx, id, true); err != nil {
			return err
		}
		var err error
		if order, err = inventory.ActiveOrder(ctx, r, companyID, id); err != nil {
			return err
		}
		if in.CustomerID != nil && *in.CustomerID != order.CustomerID {
			if _, err := inventory.ActiveCustomer(ctx, r, order.CompanyID, *in.CustomerID); err != nil {
				return err
			}
			order.CustomerID = *in.CustomerID
		}
		if in.Date != nil {
			order.Date = in.Date.UTC()
		}
		if in.WarehouseID != nil && *in.WarehouseID != order.WarehouseID {
			order.WarehouseID = *in.WarehouseID
			if err := recheckItems(ctx, r, order); err != nil {
				return err
			}
		}
		order.UpdatedAt = uc.now()
		return r.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// recheckItems valida los ítems activos de la orden contra su bodega (ya asignada en order).
func recheckItems(ctx context.Context, r repository.Repos, order *entity.Order) error {
	items, err := r.OrderItems.ListByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	if err := r.Ledger.LockProducts(ctx, ids...); err != nil {
		return err
	}
	if err := r.Ledger.LockWarehouse(ctx, order.WarehouseID, false); err != nil {
		return err
	}
	warehouse, err := inventory.ActiveWarehouse(ctx, r, order.CompanyID, order.WarehouseID)
	if err != nil {
		return err
	}
	for _, it := range items {
		product, err := r.Products.GetByID(ctx, it.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			continue
		}
		if err := ledger.CheckCompatibility(product, warehouse); err != nil {
			return err
		}
	}
	return nil
}

// Delete elimina lógicamente la orden; sus ítems dejan de contar en el libro. Una compra solo se
// elimina si el retiro de su stock no deja saldos negativos. La factura de una venta se anula;
// si ya está pagada la eliminación se rechaza.
func (uc *OrderUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Ledger.LockOrder(ctx, id, true); err != nil {
			return err
		}
		order, err := inventory.ActiveOrder(ctx, r, companyID, id)
		if err != nil {
			return err
		}
		items, err := r.OrderItems.ListByOrder(ctx, id)
		if err != nil {
			return err
		}

		effects := make(map[string]int64, len(items))
		ids := make([]string, 0, len(items))
		for _, it := range items {
			if _, ok := effects[it.ProductID]; !ok {
				ids = append(ids, it.ProductID)
			}
			effects[it.ProductID] += order.Type.StockSign() * it.Quantity
		}
		if err := r.Ledger.LockProducts(ctx, ids...); err != nil {
			return err
		}
		for _, pid := range ids {
			if err := inventory.ProjectStock(ctx, r, pid, effects[pid], 0); err != nil {
				return err
			}
		}

		now := uc.now()
		if order.Type.IssuesInvoice() {
			if err := cancelInvoice(ctx, r, order.ID, now); err != nil {
				return err
			}
		}
		if err := r.Orders.SoftDelete(ctx, id, now); err != nil {
			return err
		}
		uc.log.Info().Str("order_id", id).Str("number", order.Number).Msg("orden eliminada")
		return nil
	})
}

func cancelInvoice(ctx context.Context, r repository.Repos, orderID string, now time.Time) error {
	inv, err := r.Invoices.GetByOrderID(ctx, orderID)
	if err != nil || inv == nil {
		return err
	}
	if inv.Status == entity.InvoiceStatusCancelled {
		return nil
	}
	if err := billing.CheckTransition(inv.Status, entity.InvoiceStatusCancelled); err != nil {
		return err
	}
	inv.Status = entity.InvoiceStatusCancelled
	inv.UpdatedAt = now
	return r.Invoices.UpdateStatus(ctx, inv)
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:          o.ID,
		CompanyID:   o.CompanyID,
		Number:      o.Number,
		Type:        string(o.Type),
		CustomerID:  o.CustomerID,
		WarehouseID: o.WarehouseID,
		Date:        o.Date,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
