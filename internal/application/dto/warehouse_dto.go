package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega. Type vacío = bodega mixta.
type CreateWarehouseRequest struct {
	Name    string  `json:"name" validate:"required,min=1,max=255"`
	Type    *string `json:"type" validate:"omitempty,oneof=solid liquid"`
	Address string  `json:"address"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega. ClearType convierte la bodega en mixta.
type UpdateWarehouseRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	Type      *string `json:"type" validate:"omitempty,oneof=solid liquid"`
	ClearType bool    `json:"clear_type"`
	Address   *string `json:"address"`
}

// WarehouseResponse salida de una bodega. Type nil = acepta cualquier producto.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Type      *string   `json:"type"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
