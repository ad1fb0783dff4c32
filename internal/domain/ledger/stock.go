// Package ledger contiene las reglas puras del libro de inventario: saldo derivado de órdenes,
// compatibilidad producto/bodega, numeración de documentos y agregados de analítica.
// No conoce la persistencia; los adaptadores le entregan los datos ya filtrados.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// Entry un ítem activo de una orden activa, visto desde el libro.
type Entry struct {
	OrderID    string
	OrderType  entity.OrderType
	CustomerID string
	ProductID  string
	Quantity   int64
	Price      decimal.Decimal
}

// Delta efecto con signo de la entrada sobre el stock de su producto.
func (e Entry) Delta() int64 {
	return e.OrderType.StockSign() * e.Quantity
}

// Balances stock por producto. El resultado no depende del orden de las entradas.
func Balances(entries []Entry) map[string]int64 {
	out := make(map[string]int64)
	for _, e := range entries {
		out[e.ProductID] += e.Delta()
	}
	return out
}

// StockOf stock de un producto. Un producto sin movimientos tiene stock 0.
func StockOf(productID string, entries []Entry) int64 {
	var total int64
	for _, e := range entries {
		if e.ProductID == productID {
			total += e.Delta()
		}
	}
	return total
}

// Projection cambio de saldo de un producto por una escritura sobre el libro.
// Retract es el efecto con signo que se retira (versión previa del ítem) y Apply el que se aplica.
type Projection struct {
	ProductID string
	Current   int64
	Retract   int64
	Apply     int64
}

// After saldo resultante.
func (p Projection) After() int64 {
	return p.Current - p.Retract + p.Apply
}

// Check rechaza la escritura si deja el saldo negativo. Una escritura que no reduce el saldo
// nunca se rechaza.
func (p Projection) Check() error {
	after := p.After()
	if after >= 0 || after >= p.Current {
		return nil
	}
	if p.Apply < 0 {
		return &domain.InsufficientStockError{
			ProductID: p.ProductID,
			Current:   p.Current - p.Retract,
			Requested: -p.Apply,
		}
	}
	return &domain.InsufficientStockError{
		ProductID: p.ProductID,
		Current:   p.Current,
		Requested: p.Current - after,
	}
}
