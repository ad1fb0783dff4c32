// Package billing consulta y ciclo de cobro de las facturas emitidas por órdenes de venta.
package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

// transitions estados alcanzables desde cada estado. paid y cancelled son finales.
var transitions = map[entity.InvoiceStatus][]entity.InvoiceStatus{
	entity.InvoiceStatusPending: {entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled, entity.InvoiceStatusOverdue},
	entity.InvoiceStatusOverdue: {entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled},
}

// CheckTransition devuelve ErrConflict si la factura no puede pasar de from a to.
// Repetir el estado actual no es un cambio y se acepta.
func CheckTransition(from, to entity.InvoiceStatus) error {
	if from == to {
		return nil
	}
	for _, s := range transitions[from] {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: la factura no puede pasar de %s a %s", domain.ErrConflict, from, to)
}

// TxRunner ejecuta una función dentro de una transacción de BD.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// InvoiceUseCase consulta y cambio de estado de facturas.
type InvoiceUseCase struct {
	tx    TxRunner
	repos repository.Repos
	log   *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(tx TxRunner, repos repository.Repos, log *logger.Logger) *InvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{tx: tx, repos: repos, log: log.Named("billing")}
}

// GetByID factura de la empresa.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := loadInvoice(ctx, uc.repos, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// List facturas de la empresa, opcionalmente por estado.
func (uc *InvoiceUseCase) List(ctx context.Context, companyID, status string, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	filter := repository.InvoiceFilter{CompanyID: companyID, Status: entity.InvoiceStatus(status)}
	if status != "" && !filter.Status.Valid() {
		return nil, domain.Invalid("status", "debe ser pending, paid, cancelled u overdue")
	}
	page.Normalize()
	list, total, err := uc.repos.Invoices.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *ToInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// UpdateStatus aplica un cambio de estado permitido.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, companyID, id string, in dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	to := entity.InvoiceStatus(in.Status)
	if !to.Valid() {
		return nil, domain.Invalid("status", "debe ser pending, paid, cancelled u overdue")
	}
	var out *entity.Invoice
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		inv, err := loadInvoice(ctx, r, companyID, id)
		if err != nil {
			return err
		}
		if err := CheckTransition(inv.Status, to); err != nil {
			return err
		}
		out = inv
		if inv.Status == to {
			return nil
		}
		from := inv.Status
		inv.Status = to
		inv.UpdatedAt = time.Now().UTC()
		if err := r.Invoices.UpdateStatus(ctx, inv); err != nil {
			return err
		}
		uc.log.Info().Str("invoice_id", id).Str("from", string(from)).Str("to", string(to)).Msg("estado de factura actualizado")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(out), nil
}

func loadInvoice(ctx context.Context, r repository.Repos, companyID, id string) (*entity.Invoice, error) {
	inv, err := r.Invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil || inv.IsDeleted() || inv.CompanyID != companyID {
		return nil, domain.NotFound(domain.EntityInvoice, id)
	}
	return inv, nil
}

// ToInvoiceResponse mapea una factura a su DTO de salida.
func ToInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:        inv.ID,
		CompanyID: inv.CompanyID,
		OrderID:   inv.OrderID,
		Number:    inv.Number,
		Date:      inv.Date,
		Status:    string(inv.Status),
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}
