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
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock no se guarda: se deriva del libro.
type ProductUseCase struct {
	tx    TxRunner
	repos repository.Repos
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx TxRunner, repos repository.Repos) *ProductUseCase {
	return &ProductUseCase{tx: tx, repos: repos}
}

// Create crea un nuevo producto. Devuelve domain.ErrDuplicate si el código ya existe en la empresa.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	typ := entity.ProductType(in.Type)
	if !typ.Valid() {
		return nil, domain.Invalid("type", "debe ser solid o liquid")
	}
	if in.Price == nil || in.Price.IsNegative() {
		return nil, domain.Invalid("price", "debe ser mayor o igual a cero")
	}
	name, code := strings.TrimSpace(in.Name), strings.TrimSpace(in.Code)
	if name == "" {
		return nil, domain.Invalid("name", "es obligatorio")
	}
	if code == "" {
		return nil, domain.Invalid("code", "es obligatorio")
	}
	if err := activeCompany(ctx, uc.repos, companyID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Code:      code,
		Price:     *in.Price,
		Type:      typ,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repos.Products.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID producto activo de la empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := inventory.ActiveProduct(ctx, uc.repos, companyID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. El tipo no puede cambiar mientras haya ítems activos que lo
// referencian: se bloquea el producto para que ningún ítem nuevo entre durante el chequeo.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.Invalid("price", "debe ser mayor o igual a cero")
	}
	var out *entity.Product
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Ledger.LockProducts(ctx, id); err != nil {
			return err
		}
		product, err := inventory.ActiveProduct(ctx, r, companyID, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.Invalid("name", "no puede quedar vacío")
			}
			product.Name = name
		}
		if in.Code != nil {
			code := strings.TrimSpace(*in.Code)
			if code == "" {
				return domain.Invalid("code", "no puede quedar vacío")
			}
			product.Code = code
		}
		if in.Price != nil {
			product.Price = *in.Price
		}
		if in.Type != nil && entity.ProductType(*in.Type) != product.Type {
			typ := entity.ProductType(*in.Type)
			if !typ.Valid() {
				return domain.Invalid("type", "debe ser solid o liquid")
			}
			refs, err := r.OrderItems.CountActiveByProduct(ctx, id)
			if err != nil {
				return err
			}
			if refs > 0 {
				return fmt.Errorf("%w: el producto tiene %d ítems activos y su tipo no puede cambiar", domain.ErrConflict, refs)
			}
			product.Type = typ
		}
		product.UpdatedAt = time.Now().UTC()
		if err := r.Products.Update(ctx, product); err != nil {
			return err
		}
		out = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(out), nil
}

// List productos activos de la empresa.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter, page dto.PageRequest) (*dto.ProductListResponse, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.Invalid("type", "debe ser solid o liquid")
	}
	page.Normalize()
	list, total, err := uc.repos.Products.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// CountByType productos activos de la empresa por tipo.
func (uc *ProductUseCase) CountByType(ctx context.Context, companyID string) (*dto.ProductTypeCountResponse, error) {
	counts, err := uc.repos.Products.CountByType(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &dto.ProductTypeCountResponse{
		Solid:  counts[entity.ProductTypeSolid],
		Liquid: counts[entity.ProductTypeLiquid],
	}, nil
}

// Delete elimina lógicamente un producto sin ítems activos.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Ledger.LockProducts(ctx, id); err != nil {
			return err
		}
		if _, err := inventory.ActiveProduct(ctx, r, companyID, id); err != nil {
			return err
		}
		refs, err := r.OrderItems.CountActiveByProduct(ctx, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("%w: el producto tiene %d ítems activos", domain.ErrConflict, refs)
		}
		return r.Products.SoftDelete(ctx, id, time.Now().UTC())
	})
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		CompanyID: p.CompanyID,
		Name:      p.Name,
		Code:      p.Code,
		Price:     p.Price,
		Type:      string(p.Type),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
