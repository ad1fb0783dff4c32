package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository     = (*OrderRepo)(nil)
	_ repository.OrderItemRepository = (*OrderItemRepo)(nil)
	_ repository.InvoiceRepository   = (*InvoiceRepo)(nil)
)

// OrderRepo órdenes en memoria. El número es único por empresa.
type OrderRepo struct{ a access }

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.orders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.orders {
			if other.CompanyID == o.CompanyID && other.Number == o.Number {
				return domain.ErrDuplicateNumber
			}
		}
		st.orders[o.ID] = *o
		return nil
	})
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.a.read(ctx, func(st *state) error {
		if o, ok := st.orders[id]; ok {
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	return r.a.write(ctx, func(st *state) error {
		cur, ok := st.orders[o.ID]
		if !ok {
			return nil
		}
		cur.CustomerID = o.CustomerID
		cur.WarehouseID = o.WarehouseID
		cur.Date = o.Date
		cur.UpdatedAt = o.UpdatedAt
		st.orders[o.ID] = cur
		return nil
	})
}

func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter, limit, offset int) ([]*entity.Order, int, error) {
	var (
		out   []*entity.Order
		total int
	)
	err := r.a.read(ctx, func(st *state) error {
		var list []*entity.Order
		for _, o := range st.orders {
			if o.DeletedAt != nil || (f.CompanyID != "" && o.CompanyID != f.CompanyID) ||
				(f.Type != "" && o.Type != f.Type) ||
				(f.CustomerID != "" && o.CustomerID != f.CustomerID) ||
				(f.WarehouseID != "" && o.WarehouseID != f.WarehouseID) {
				continue
			}
			o := o
			list = append(list, &o)
		}
		out, total = newest(list, func(o *entity.Order) time.Time { return o.CreatedAt },
			func(o *entity.Order) string { return o.ID }, limit, offset)
		return nil
	})
	return out, total, err
}

func (r *OrderRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return r.a.write(ctx, func(st *state) error {
		if o, ok := st.orders[id]; ok && o.DeletedAt == nil {
			o.DeletedAt = &at
			o.UpdatedAt = at
			st.orders[id] = o
		}
		return nil
	})
}

// OrderItemRepo ítems de orden en memoria.
type OrderItemRepo struct{ a access }

func (r *OrderItemRepo) Create(ctx context.Context, it *entity.OrderItem) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.items[it.ID]; ok {
			return domain.ErrDuplicate
		}
		st.items[it.ID] = *it
		return nil
	})
}

func (r *OrderItemRepo) GetByID(ctx context.Context, id string) (*entity.OrderItem, error) {
	var out *entity.OrderItem
	err := r.a.read(ctx, func(st *state) error {
		if it, ok := st.items[id]; ok {
			out = &it
		}
		return nil
	})
	return out, err
}

func (r *OrderItemRepo) Update(ctx context.Context, it *entity.OrderItem) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.items[it.ID]; ok {
			st.items[it.ID] = *it
		}
		return nil
	})
}

func (r *OrderItemRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	return r.a.write(ctx, func(st *state) error {
		if it, ok := st.items[id]; ok && it.DeletedAt == nil {
			it.DeletedAt = &at
			it.UpdatedAt = at
			st.items[id] = it
		}
		return nil
	})
}

func (r *OrderItemRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	err := r.a.read(ctx, func(st *state) error {
		for _, it := range st.items {
			if it.OrderID == orderID && it.DeletedAt == nil {
				it := it
				out = append(out, &it)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func (r *OrderItemRepo) CountActiveByProduct(ctx context.Context, productID string) (int64, error) {
	var n int64
	err := r.a.read(ctx, func(st *state) error {
		for _, it := range st.items {
			if it.ProductID != productID || it.DeletedAt != nil {
				continue
			}
			if o, ok := st.orders[it.OrderID]; ok && o.DeletedAt == nil {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *OrderItemRepo) ProductIDsByWarehouse(ctx context.Context, warehouseID string) ([]string, error) {
	seen := make(map[string]struct{})
	err := r.a.read(ctx, func(st *state) error {
		for _, it := range st.items {
			if it.DeletedAt != nil {
				continue
			}
			if o, ok := st.orders[it.OrderID]; ok && o.DeletedAt == nil && o.WarehouseID == warehouseID {
				seen[it.ProductID] = struct{}{}
			}
		}
		return nil
	})
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, err
}

// InvoiceRepo facturas en memoria. Una por orden; número único por empresa.
type InvoiceRepo struct{ a access }

func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	return r.a.write(ctx, func(st *state) error {
		if _, ok := st.invoices[inv.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.invoices {
			if other.OrderID == inv.OrderID {
				return domain.ErrDuplicate
			}
			if other.CompanyID == inv.CompanyID && other.Number == inv.Number {
				return domain.ErrDuplicateNumber
			}
		}
		st.invoices[inv.ID] = *inv
		return nil
	})
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.a.read(ctx, func(st *state) error {
		if inv, ok := st.invoices[id]; ok {
			out = &inv
		}
		return nil
	})
	return out, err
}

func (r *InvoiceRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.a.read(ctx, func(st *state) error {
		for _, inv := range st.invoices {
			if inv.OrderID == orderID {
				out = &inv
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *InvoiceRepo) UpdateStatus(ctx context.Context, inv *entity.Invoice) error {
	return r.a.write(ctx, func(st *state) error {
		cur, ok := st.invoices[inv.ID]
		if !ok {
			return nil
		}
		cur.Status = inv.Status
		cur.UpdatedAt = inv.UpdatedAt
		st.invoices[inv.ID] = cur
		return nil
	})
}

func (r *InvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter, limit, offset int) ([]*entity.Invoice, int, error) {
	var (
		out   []*entity.Invoice
		total int
	)
	err := r.a.read(ctx, func(st *state) error {
		var list []*entity.Invoice
		for _, inv := range st.invoices {
			if inv.DeletedAt != nil || (f.CompanyID != "" && inv.CompanyID != f.CompanyID) ||
				(f.Status != "" && inv.Status != f.Status) {
				continue
			}
			inv := inv
			list = append(list, &inv)
		}
		out, total = newest(list, func(i *entity.Invoice) time.Time { return i.CreatedAt },
			func(i *entity.Invoice) string { return i.ID }, limit, offset)
		return nil
	})
	return out, total, err
}
