package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem línea de una orden. Es la unidad del libro de inventario.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsDeleted indica si el ítem fue eliminado lógicamente.
func (i *OrderItem) IsDeleted() bool { return i.DeletedAt != nil }

// LineTotal cantidad × precio.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}
