package inventory

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// Los cargadores devuelven NotFoundError si la entidad no existe, está eliminada o pertenece a
// otra empresa. companyID vacío no filtra por empresa.

func sameCompany(companyID, owner string) bool {
	return companyID == "" || companyID == owner
}

// ActiveOrder carga una orden activa.
func ActiveOrder(ctx context.Context, r repository.Repos, companyID, id string) (*entity.Order, error) {
	o, err := r.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil || o.IsDeleted() || !sameCompany(companyID, o.CompanyID) {
		return nil, domain.NotFound(domain.EntityOrder, id)
	}
	return o, nil
}

// ActiveProduct carga un producto activo.
func ActiveProduct(ctx context.Context, r repository.Repos, companyID, id string) (*entity.Product, error) {
	p, err := r.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.IsDeleted() || !sameCompany(companyID, p.CompanyID) {
		return nil, domain.NotFound(domain.EntityProduct, id)
	}
	return p, nil
}

// ActiveWarehouse carga una bodega activa.
func ActiveWarehouse(ctx context.Context, r repository.Repos, companyID, id string) (*entity.Warehouse, error) {
	w, err := r.Warehouses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil || w.IsDeleted() || !sameCompany(companyID, w.CompanyID) {
		return nil, domain.NotFound(domain.EntityWarehouse, id)
	}
	return w, nil
}

// ActiveCustomer carga un cliente activo.
func ActiveCustomer(ctx context.Context, r repository.Repos, companyID, id string) (*entity.Customer, error) {
	c, err := r.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsDeleted() || !sameCompany(companyID, c.CompanyID) {
		return nil, domain.NotFound(domain.EntityCustomer, id)
	}
	return c, nil
}
