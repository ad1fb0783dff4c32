package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository   = (*CompanyRepo)(nil)
	_ repository.CustomerRepository  = (*CustomerRepo)(nil)
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
)

func matches(name, search string) bool {
	return search == "" || strings.Contains(strings.ToLower(name), strings.ToLower(search))
}

// CompanyRepo empresas en memoria.
type CompanyRepo struct{ a access }

func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.companies[c.ID]; ok {
			return domain.ErrDuplicate
		}
		st.companies[c.ID] = *c
		return nil
	})
}

func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.a.read(ctx, func(st *state) error {
		if c, ok := st.companies[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.companies[c.ID]; ok {
			st.companies[c.ID] = *c
		}
		return nil
	})
}

func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, int, error) {
	var (
		out   []*entity.Company
		total int
	)
	err := r.a.read(ctx, func(st *state) error {
		list := make([]*entity.Company, 0, len(st.companies))
		for _, c := range st.companies {
			if c.DeletedAt == nil {
				c := c
				list = append(list, &c)
			}
		}
		out, total = newest(list, func(c *entity.Company) time.Time { return c.CreatedAt },
			func(c *entity.Company) string { return c.ID }, limit, offset)
		return nil
	})
	return out, total, err
}

func (r *CompanyRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return r.a.write(ctx, func(st *state) error {
		if c, ok := st.companies[id]; ok && c.DeletedAt == nil {
			c.DeletedAt = &at
			c.UpdatedAt = at
			st.companies[id] = c
		}
		return nil
	})
}

// CustomerRepo clientes en memoria.
type CustomerRepo struct{ a access }

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.customers[c.ID]; ok {
			return domain.ErrDuplicate
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.a.read(ctx, func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.customers[c.ID]; ok {
			st.customers[c.ID] = *c
		}
		return nil
	})
}

func (r *CustomerRepo) List(ctx context.Context, f repository.CustomerFilter, limit, offset int) ([]*entity.Customer, int, error) {
	var (
		out   []*entity.Customer
		total int
	)
	err := r.a.read(ctx, func(st *state) error {
		var list []*entity.Customer
		for _, c := range st.customers {
			if c.DeletedAt != nil || (f.CompanyID != "" && c.CompanyID != f.CompanyID) ||
				(f.Type != "" && c.Type != f.Type) || !matches(c.Name, f.Search) {
				continue
			}
			c := c
			list = append(list, &c)
		}
		out, total = newest(list, func(c *entity.Customer) time.Time { return c.CreatedAt },
			func(c *entity.Customer) string { return c.ID }, limit, offset)
		return nil
	})
	return out, total, err
}

func (r *CustomerRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return r.a.write(ctx, func(st *state) error {
		if c, ok := st.customers[id]; ok && c.DeletedAt == nil {
			c.DeletedAt = &at
			c.UpdatedAt = at
			st.customers[id] = c
		}
		return nil
	})
}

// ProductRepo productos en memoria. El código es único por empresa entre productos activos.
type ProductRepo struct{ a access }

func codeTaken(st *state, p *entity.Product) bool {
	for _, other := range st.products {
		if other.ID != p.ID && other.DeletedAt == nil && other.CompanyID == p.CompanyID && other.Code == p.Code {
			return true
		}
	}
	return false
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.products[p.ID]; ok || codeTaken(st, p) {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(ctx, func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetByCode(ctx context.Context, companyID, code string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(ctx, func(st *state) error {
		for _, p := range st.products {
			if p.DeletedAt == nil && p.CompanyID == companyID && p.Code == code {
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return nil
		}
		if codeTaken(st, p) {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, int, error) {
	var (
		out   []*entity.Product
		total int
	)
	err := r.a.read(ctx, func(st *state) error {
		var list []*entity.Product
		for _, p := range st.products {
			if p.DeletedAt != nil || (f.CompanyID != "" && p.CompanyID != f.CompanyID) ||
				(f.Type != "" && p.Type != f.Type) || !matches(p.Name, f.Search) {
				continue
			}
			p := p
			list = append(list, &p)
		}
		out, total = newest(list, func(p *entity.Product) time.Time { return p.CreatedAt },
			func(p *entity.Product) string { return p.ID }, limit, offset)
		return nil
	})
	return out, total, err
}

func (r *ProductRepo) CountByType(ctx context.Context, companyID string) (map[entity.ProductType]int64, error) {
	out := make(map[entity.ProductType]int64)
	err := r.a.read(ctx, func(st *state) error {
		for _, p := range st.products {
			if p.DeletedAt == nil && (companyID == "" || p.CompanyID == companyID) {
				out[p.Type]++
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return r.a.write(ctx, func(st *state) error {
		if p, ok := st.products[id]; ok && p.DeletedAt == nil {
			p.DeletedAt = &at
			p.UpdatedAt = at
			st.products[id] = p
		}
		return nil
	})
}

// WarehouseRepo bodegas en memoria.
type WarehouseRepo struct{ a access }

func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.warehouses[w.ID]; ok {
			return domain.ErrDuplicate
		}
		st.warehouses[w.ID] = *w
		return nil
	})
}

func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.a.read(ctx, func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			out = &w
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.warehouses[w.ID]; ok {
			st.warehouses[w.ID] = *w
		}
		return nil
	})
}

func (r *WarehouseRepo) List(ctx context.Context, f repository.WarehouseFilter, limit, offset int) ([]*entity.Warehouse, int, error) {
	var (
		out   []*entity.Warehouse
		total int
	)
	err := r.a.read(ctx, func(st *state) error {
		var list []*entity.Warehouse
		for _, w := range st.warehouses {
			if w.DeletedAt != nil || (f.CompanyID != "" && w.CompanyID != f.CompanyID) || !matches(w.Name, f.Search) {
				continue
			}
			if f.Type != "" && (w.Type == nil || *w.Type != f.Type) {
				continue
			}
			w := w
			list = append(list, &w)
		}
		out, total = newest(list, func(w *entity.Warehouse) time.Time { return w.CreatedAt },
			func(w *entity.Warehouse) string { return w.ID }, limit, offset)
		return nil
	})
	return out, total, err
}

func (r *WarehouseRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return r.a.write(ctx, func(st *state) error {
		if w, ok := st.warehouses[id]; ok && w.DeletedAt == nil {
			w.DeletedAt = &at
			w.UpdatedAt = at
			st.warehouses[id] = w
		}
		return nil
	})
}
