package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductType clasifica físicamente el producto; determina en qué bodegas puede almacenarse.
type ProductType string

const (
	ProductTypeSolid  ProductType = "solid"
	ProductTypeLiquid ProductType = "liquid"
)

// Valid indica si el tipo pertenece al catálogo.
func (t ProductType) Valid() bool {
	return t == ProductTypeSolid || t == ProductTypeLiquid
}

// Product representa un artículo del catálogo de la empresa.
// El stock no se guarda: se deriva del libro de órdenes.
type Product struct {
	ID        string
	CompanyID string
	Name      string
	Code      string // único por empresa entre productos activos
	Price     decimal.Decimal
	Type      ProductType
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsDeleted indica si el producto fue eliminado lógicamente.
func (p *Product) IsDeleted() bool { return p.DeletedAt != nil }
