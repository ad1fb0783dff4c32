package entity

import "time"

// Warehouse representa una bodega. Type nil = bodega mixta, acepta cualquier tipo de producto.
type Warehouse struct {
	ID        string
	CompanyID string
	Name      string
	Type      *ProductType
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsDeleted indica si la bodega fue eliminada lógicamente.
func (w *Warehouse) IsDeleted() bool { return w.DeletedAt != nil }

// TypeLabel devuelve el tipo como texto ("any" para bodegas mixtas).
func (w *Warehouse) TypeLabel() string {
	if w.Type == nil {
		return "any"
	}
	return string(*w.Type)
}
