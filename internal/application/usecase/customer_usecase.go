package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes y proveedores.
type CustomerUseCase struct {
	repos repository.Repos
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repos repository.Repos) *CustomerUseCase {
	return &CustomerUseCase{repos: repos}
}

// Create crea un nuevo cliente en una empresa activa.
func (uc *CustomerUseCase) Create(ctx context.Context, companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	typ := entity.CustomerType(in.Type)
	if !typ.Valid() {
		return nil, domain.Invalid("type", "debe ser customer o supplier")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "es obligatorio")
	}
	if err := activeCompany(ctx, uc.repos, companyID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Type:      typ,
		Name:      name,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repos.Customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID cliente activo de la empresa.
func (uc *CustomerUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.CustomerResponse, error) {
	customer, err := inventory.ActiveCustomer(ctx, uc.repos, companyID, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Update aplica cambios parciales.
func (uc *CustomerUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := inventory.ActiveCustomer(ctx, uc.repos, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Type != nil {
		typ := entity.CustomerType(*in.Type)
		if !typ.Valid() {
			return nil, domain.Invalid("type", "debe ser customer o supplier")
		}
		customer.Type = typ
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("name", "no puede quedar vacío")
		}
		customer.Name = name
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	customer.UpdatedAt = time.Now().UTC()
	if err := uc.repos.Customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List clientes activos de la empresa.
func (uc *CustomerUseCase) List(ctx context.Context, filter repository.CustomerFilter, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.Invalid("type", "debe ser customer o supplier")
	}
	page.Normalize()
	list, total, err := uc.repos.Customers.List(ctx, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina lógicamente el cliente. Sus órdenes existentes no cambian.
func (uc *CustomerUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := inventory.ActiveCustomer(ctx, uc.repos, companyID, id); err != nil {
		return err
	}
	return uc.repos.Customers.SoftDelete(ctx, id, time.Now().UTC())
}

func activeCompany(ctx context.Context, r repository.Repos, id string) error {
	company, err := r.Companies.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if company == nil || company.IsDeleted() {
		return domain.NotFound(domain.EntityCompany, id)
	}
	return nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Type:      string(c.Type),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
