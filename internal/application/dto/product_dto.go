package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name  string           `json:"name" validate:"required,min=1,max=255"`
	Code  string           `json:"code" validate:"required,min=1,max=50"`
	Price *decimal.Decimal `json:"price" validate:"required"`
	Type  string           `json:"type" validate:"required,oneof=solid liquid"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Name  *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Code  *string          `json:"code" validate:"omitempty,min=1,max=50"`
	Price *decimal.Decimal `json:"price"`
	Type  *string          `json:"type" validate:"omitempty,oneof=solid liquid"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	Price     decimal.Decimal `json:"price"`
	Type      string          `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductTypeCountResponse productos activos por tipo.
type ProductTypeCountResponse struct {
	Solid  int64 `json:"solid"`
	Liquid int64 `json:"liquid"`
}
