package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/ledger"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas.
type WarehouseUseCase struct {
	tx    TxRunner
	repos repository.Repos
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(tx TxRunner, repos repository.Repos) *WarehouseUseCase {
	return &WarehouseUseCase{tx: tx, repos: repos}
}

func parseWarehouseType(s *string) (*entity.ProductType, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t := entity.ProductType(*s)
	if !t.Valid() {
		return nil, domain.Invalid("type", "debe ser solid, liquid o vacío")
	}
	return &t, nil
}

// Create crea una nueva bodega. Sin tipo acepta cualquier producto.
func (uc *WarehouseUseCase) Create(ctx context.Context, companyID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	typ, err := parseWarehouseType(in.Type)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "es obligatorio")
	}
	if err := activeCompany(ctx, uc.repos, companyID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Type:      typ,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repos.Warehouses.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega activa de la empresa.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := inventory.ActiveWarehouse(ctx, uc.repos, companyID, id)
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza una bodega. Un cambio de tipo se rechaza si algún producto con ítems activos
// en la bodega quedaría incompatible.
func (uc *WarehouseUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	newType, err := parseWarehouseType(in.Type)
	if err != nil {
		return nil, err
	}
	var out *entity.Warehouse
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Ledger.LockWarehouse(ctx, id, true); err != nil {
			return err
		}
		warehouse, err := inventory.ActiveWarehouse(ctx, r, companyID, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.Invalid("name", "no puede quedar vacío")
			}
			warehouse.Name = name
		}
		if in.Address != nil {
			warehouse.Address = *in.Address
		}
		switch {
		case in.ClearType:
			warehouse.Type = nil
		case newType != nil && (warehouse.Type == nil || *warehouse.Type != *newType):
			warehouse.Type = newType
			if err := checkStoredProducts(ctx, r, warehouse); err != nil {
				return err
			}
		}
		warehouse.UpdatedAt = time.Now().UTC()
		if err := r.Warehouses.Update(ctx, warehouse); err != nil {
			return err
		}
		out = warehouse
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(out), nil
}

// checkStoredProducts valida los productos con ítems activos en la bodega contra su tipo (ya asignado).
func checkStoredProducts(ctx context.Context, r repository.Repos, warehouse *entity.Warehouse) error {
	ids, err := r.OrderItems.ProductIDsByWarehouse(ctx, warehouse.ID)
	if err != nil {
		return err
	}
	for _, pid := range ids {
		product, err := r.Products.GetByID(ctx, pid)
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

// List lista bodegas activas de la empresa con paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, filter repository.WarehouseFilter, page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.Invalid("type", "debe ser solid o liquid")
	}
	page.Normalize()
	list, total, err := uc.repos.Warehouses.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina lógicamente una bodega sin ítems activos.
func (uc *WarehouseUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Ledger.LockWarehouse(ctx, id, true); err != nil {
			return err
		}
		if _, err := inventory.ActiveWarehouse(ctx, r, companyID, id); err != nil {
			return err
		}
		ids, err := r.OrderItems.ProductIDsByWarehouse(ctx, id)
		if err != nil {
			return err
		}
		if len(ids) > 0 {
			return fmt.Errorf("%w: la bodega tiene ítems activos de %d productos", domain.ErrConflict, len(ids))
		}
		return r.Warehouses.SoftDelete(ctx, id, time.Now().UTC())
	})
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	out := &dto.WarehouseResponse{
		ID:        w.ID,
		CompanyID: w.CompanyID,
		Name:      w.Name,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	if w.Type != nil {
		t := string(*w.Type)
		out.Type = &t
	}
	return out
}
