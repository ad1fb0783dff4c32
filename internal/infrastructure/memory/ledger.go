package memory

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/ledger"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var (
	_ repository.SequenceRepository  = (*SequenceRepo)(nil)
	_ repository.LedgerRepository    = (*LedgerRepo)(nil)
	_ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)
)

// SequenceRepo contadores de numeración en memoria.
type SequenceRepo struct{ a access }

func (r *SequenceRepo) Next(ctx context.Context, key ledger.SequenceKey, floor int64) (int64, error) {
	var n int64
	err := r.a.write(ctx, func(st *state) error {
		n = max(st.sequences[key], floor) + 1
		st.sequences[key] = n
		return nil
	})
	return n, err
}

func (r *SequenceRepo) HighestIssued(ctx context.Context, key ledger.SequenceKey) (int64, error) {
	var highest int64
	err := r.a.read(ctx, func(st *state) error {
		consider := func(companyID, number string) {
			if companyID != key.CompanyID {
				return
			}
			if n, ok := ledger.ParseSequence(key, number); ok && n > highest {
				highest = n
			}
		}
		switch key.Kind {
		case ledger.KindOrder:
			for _, o := range st.orders {
				consider(o.CompanyID, o.Number)
			}
		case ledger.KindInvoice:
			for _, inv := range st.invoices {
				consider(inv.CompanyID, inv.Number)
			}
		}
		return nil
	})
	return highest, err
}

// LedgerRepo lecturas del libro en memoria. Los bloqueos por producto no son necesarios:
// Store.Run ya serializa todas las transacciones.
type LedgerRepo struct{ a access }

func (r *LedgerRepo) LockProducts(ctx context.Context, _ ...string) error {
	return ctx.Err()
}

func (r *LedgerRepo) LockOrder(ctx context.Context, _ string, _ bool) error {
	return ctx.Err()
}

func (r *LedgerRepo) LockWarehouse(ctx context.Context, _ string, _ bool) error {
	return ctx.Err()
}

func (r *LedgerRepo) CurrentStock(ctx context.Context, productID string) (int64, error) {
	var stock int64
	err := r.a.read(ctx, func(st *state) error {
		stock = ledger.StockOf(productID, st.entries(""))
		return nil
	})
	return stock, err
}

// AnalyticsRepo reportes calculados sobre el estado publicado.
type AnalyticsRepo struct{ a access }

func activeProducts(st *state, companyID string) []*entity.Product {
	var out []*entity.Product
	for _, p := range st.products {
		if p.DeletedAt == nil && (companyID == "" || p.CompanyID == companyID) {
			p := p
			out = append(out, &p)
		}
	}
	return out
}

func (r *AnalyticsRepo) BestSellingProducts(ctx context.Context, companyID string, limit int) ([]ledger.BestSeller, error) {
	var out []ledger.BestSeller
	err := r.a.read(ctx, func(st *state) error {
		products := make(map[string]*entity.Product)
		for _, p := range activeProducts(st, companyID) {
			products[p.ID] = p
		}
		out = ledger.BestSelling(st.entries(companyID), products, limit)
		return nil
	})
	return out, err
}

func (r *AnalyticsRepo) HighestStockProducts(ctx context.Context, companyID string, limit int) ([]ledger.StockRank, error) {
	var out []ledger.StockRank
	err := r.a.read(ctx, func(st *state) error {
		// El saldo de un producto es global: no se filtra el libro por empresa.
		out = ledger.HighestStock(st.entries(""), activeProducts(st, companyID), limit)
		return nil
	})
	return out, err
}

func (r *AnalyticsRepo) TopCustomers(ctx context.Context, companyID string, limit int) ([]ledger.CustomerRank, error) {
	var out []ledger.CustomerRank
	err := r.a.read(ctx, func(st *state) error {
		var orders []*entity.Order
		for _, o := range st.orders {
			if o.DeletedAt == nil && (companyID == "" || o.CompanyID == companyID) {
				o := o
				orders = append(orders, &o)
			}
		}
		customers := make(map[string]*entity.Customer)
		for _, c := range st.customers {
			if c.DeletedAt == nil {
				c := c
				customers[c.ID] = &c
			}
		}
		out = ledger.TopCustomers(orders, st.entries(companyID), customers, limit)
		return nil
	})
	return out, err
}
