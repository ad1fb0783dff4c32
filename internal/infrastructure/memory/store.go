// Package memory implementa los puertos de persistencia en memoria: un único escritor a la vez y
// transacciones sobre una copia del estado que se publica solo si el callback termina sin error.
// Sirve como backend de desarrollo (STORAGE_DRIVER=memory) y en las pruebas.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/ledger"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

type state struct {
	companies  map[string]entity.Company
	customers  map[string]entity.Customer
	products   map[string]entity.Product
	warehouses map[string]entity.Warehouse
	orders     map[string]entity.Order
	items      map[string]entity.OrderItem
	invoices   map[string]entity.Invoice
	sequences  map[ledger.SequenceKey]int64
}

func newState() *state {
	return &state{
		companies:  make(map[string]entity.Company),
		customers:  make(map[string]entity.Customer),
		products:   make(map[string]entity.Product),
		warehouses: make(map[string]entity.Warehouse),
		orders:     make(map[string]entity.Order),
		items:      make(map[string]entity.OrderItem),
		invoices:   make(map[string]entity.Invoice),
		sequences:  make(map[ledger.SequenceKey]int64),
	}
}

func (st *state) clone() *state {
	return &state{
		companies:  maps.Clone(st.companies),
		customers:  maps.Clone(st.customers),
		products:   maps.Clone(st.products),
		warehouses: maps.Clone(st.warehouses),
		orders:     maps.Clone(st.orders),
		items:      maps.Clone(st.items),
		invoices:   maps.Clone(st.invoices),
		sequences:  maps.Clone(st.sequences),
	}
}

// entries ítems activos de órdenes activas; companyID vacío = todas las empresas.
func (st *state) entries(companyID string) []ledger.Entry {
	out := make([]ledger.Entry, 0, len(st.items))
	for _, it := range st.items {
		if it.DeletedAt != nil {
			continue
		}
		o, ok := st.orders[it.OrderID]
		if !ok || o.DeletedAt != nil {
			continue
		}
		if companyID != "" && o.CompanyID != companyID {
			continue
		}
		out = append(out, ledger.Entry{
			OrderID:    o.ID,
			OrderType:  o.Type,
			CustomerID: o.CustomerID,
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			Price:      it.Price,
		})
	}
	return out
}

// access abstrae si los repos operan sobre el estado publicado (con lock propio) o sobre la
// copia de una transacción en curso (el lock ya lo tiene Run).
type access interface {
	read(ctx context.Context, fn func(st *state) error) error
	write(ctx context.Context, fn func(st *state) error) error
}

// Store almacén en memoria. El valor cero no es utilizable; usar NewStore.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Repos repositorios sobre el estado publicado. No usarlos dentro de un callback de Run.
func (s *Store) Repos() repository.Repos {
	return newRepos(committed{s: s})
}

// Analytics repositorio de lectura para reportes.
func (s *Store) Analytics() *AnalyticsRepo {
	return &AnalyticsRepo{a: committed{s: s}}
}

// Run ejecuta fn sobre una copia del estado y la publica si fn no devuelve error.
// Las transacciones se serializan, por lo que los chequeos de stock no pueden intercalarse.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(newRepos(txView{st: work})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

type committed struct{ s *Store }

func (c committed) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()
	return fn(c.s.st)
}

func (c committed) write(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return fn(c.s.st)
}

type txView struct{ st *state }

func (t txView) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(t.st)
}

func (t txView) write(ctx context.Context, fn func(st *state) error) error {
	return t.read(ctx, fn)
}

func newRepos(a access) repository.Repos {
	return repository.Repos{
		Companies:  &CompanyRepo{a: a},
		Customers:  &CustomerRepo{a: a},
		Products:   &ProductRepo{a: a},
		Warehouses: &WarehouseRepo{a: a},
		Orders:     &OrderRepo{a: a},
		OrderItems: &OrderItemRepo{a: a},
		Invoices:   &InvoiceRepo{a: a},
		Sequences:  &SequenceRepo{a: a},
		Ledger:     &LedgerRepo{a: a},
	}
}

// newest ordena por fecha de creación descendente (id como desempate) y pagina.
func newest[T any](list []T, created func(T) time.Time, id func(T) string, limit, offset int) ([]T, int) {
	sort.Slice(list, func(i, j int) bool {
		ci, cj := created(list[i]), created(list[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(list[i]) < id(list[j])
	})
	total := len(list)
	if offset >= total {
		return []T{}, total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return list[offset:end], total
}
