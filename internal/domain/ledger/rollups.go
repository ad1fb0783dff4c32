package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// Límites de los reportes.
const (
	DefaultRollupLimit = 10
	MaxRollupLimit     = 100
)

// ClampLimit aplica el límite por defecto y el máximo.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultRollupLimit
	}
	if limit > MaxRollupLimit {
		return MaxRollupLimit
	}
	return limit
}

// BestSeller fila del reporte de productos más vendidos.
type BestSeller struct {
	ProductID         string
	Name              string
	Code              string
	Type              entity.ProductType
	TotalQuantitySold int64
	TotalRevenue      decimal.Decimal
	OrderCount        int64
}

// StockRank fila del reporte de productos con mayor stock.
type StockRank struct {
	ProductID    string
	Name         string
	Code         string
	Type         entity.ProductType
	Price        decimal.Decimal
	CurrentStock int64
}

// CustomerRank fila del reporte de clientes con más órdenes.
type CustomerRank struct {
	CustomerID      string
	Name            string
	Email           string
	Type            entity.CustomerType
	TotalOrders     int64
	TotalOrderValue decimal.Decimal
}

// BestSelling agrupa las entradas de órdenes de venta por producto. Solo aparecen productos
// presentes en products (los activos) con al menos una venta.
func BestSelling(entries []Entry, products map[string]*entity.Product, limit int) []BestSeller {
	rows := make(map[string]*BestSeller)
	orders := make(map[string]map[string]struct{})
	for _, e := range entries {
		if e.OrderType != entity.OrderTypeSales {
			continue
		}
		p, ok := products[e.ProductID]
		if !ok {
			continue
		}
		row, ok := rows[p.ID]
		if !ok {
			row = &BestSeller{ProductID: p.ID, Name: p.Name, Code: p.Code, Type: p.Type, TotalRevenue: decimal.Zero}
			rows[p.ID] = row
			orders[p.ID] = make(map[string]struct{})
		}
		row.TotalQuantitySold += e.Quantity
		row.TotalRevenue = row.TotalRevenue.Add(e.Price.Mul(decimal.NewFromInt(e.Quantity)))
		orders[p.ID][e.OrderID] = struct{}{}
	}

	out := make([]BestSeller, 0, len(rows))
	for id, row := range rows {
		row.OrderCount = int64(len(orders[id]))
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TotalQuantitySold != b.TotalQuantitySold {
			return a.TotalQuantitySold > b.TotalQuantitySold
		}
		if c := a.TotalRevenue.Cmp(b.TotalRevenue); c != 0 {
			return c > 0
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.ProductID < b.ProductID
	})
	return truncate(out, limit)
}

// HighestStock saldo de cada producto activo, incluidos los que están en cero.
func HighestStock(entries []Entry, products []*entity.Product, limit int) []StockRank {
	balances := Balances(entries)
	out := make([]StockRank, 0, len(products))
	for _, p := range products {
		out = append(out, StockRank{
			ProductID:    p.ID,
			Name:         p.Name,
			Code:         p.Code,
			Type:         p.Type,
			Price:        p.Price,
			CurrentStock: balances[p.ID],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.CurrentStock != b.CurrentStock {
			return a.CurrentStock > b.CurrentStock
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.ProductID < b.ProductID
	})
	return truncate(out, limit)
}

// TopCustomers cuenta órdenes activas por cliente y suma el valor de sus ítems activos.
// Solo aparecen clientes presentes en customers con al menos una orden.
func TopCustomers(orders []*entity.Order, entries []Entry, customers map[string]*entity.Customer, limit int) []CustomerRank {
	rows := make(map[string]*CustomerRank)
	for _, o := range orders {
		c, ok := customers[o.CustomerID]
		if !ok {
			continue
		}
		row, ok := rows[c.ID]
		if !ok {
			row = &CustomerRank{CustomerID: c.ID, Name: c.Name, Email: c.Email, Type: c.Type, TotalOrderValue: decimal.Zero}
			rows[c.ID] = row
		}
		row.TotalOrders++
	}
	for _, e := range entries {
		row, ok := rows[e.CustomerID]
		if !ok {
			continue
		}
		row.TotalOrderValue = row.TotalOrderValue.Add(e.Price.Mul(decimal.NewFromInt(e.Quantity)))
	}

	out := make([]CustomerRank, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TotalOrders != b.TotalOrders {
			return a.TotalOrders > b.TotalOrders
		}
		if c := a.TotalOrderValue.Cmp(b.TotalOrderValue); c != 0 {
			return c > 0
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.CustomerID < b.CustomerID
	})
	return truncate(out, limit)
}

func truncate[T any](rows []T, limit int) []T {
	limit = ClampLimit(limit)
	if len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
