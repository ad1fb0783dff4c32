package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest entrada para crear una orden. Date vacío = ahora.
type CreateOrderRequest struct {
	Type        string     `json:"type" validate:"required,oneof=sales purchase transfer"`
	CustomerID  string     `json:"customer_id" validate:"required,uuid"`
	WarehouseID string     `json:"warehouse_id" validate:"required,uuid"`
	Date        *time.Time `json:"date"`
}

// UpdateOrderRequest entrada para actualizar una orden. Tipo y número no se modifican.
type UpdateOrderRequest struct {
	CustomerID  *string    `json:"customer_id" validate:"omitempty,uuid"`
	WarehouseID *string    `json:"warehouse_id" validate:"omitempty,uuid"`
	Date        *time.Time `json:"date"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Number      string    `json:"number"`
	Type        string    `json:"type"`
	CustomerID  string    `json:"customer_id"`
	WarehouseID string    `json:"warehouse_id"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrderDetailResponse orden con sus ítems activos, total y factura (si es de venta).
type OrderDetailResponse struct {
	OrderResponse
	Items   []OrderItemResponse `json:"items"`
	Total   decimal.Decimal     `json:"total"`
	Invoice *InvoiceResponse    `json:"invoice,omitempty"`
}

// CreateOrderResponse orden creada y, para ventas, la factura emitida en la misma transacción.
type CreateOrderResponse struct {
	Order   OrderResponse    `json:"order"`
	Invoice *InvoiceResponse `json:"invoice,omitempty"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// CreateOrderItemRequest entrada para agregar un ítem a una orden.
type CreateOrderItemRequest struct {
	OrderID   string           `json:"order_id" validate:"required,uuid"`
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  int64            `json:"quantity" validate:"required,gt=0"`
	Price     *decimal.Decimal `json:"price" validate:"required"`
}

// UpdateOrderItemRequest cambios parciales de un ítem.
type UpdateOrderItemRequest struct {
	ProductID *string          `json:"product_id" validate:"omitempty,uuid"`
	Quantity  *int64           `json:"quantity" validate:"omitempty,gt=0"`
	Price     *decimal.Decimal `json:"price"`
}

// OrderItemResponse salida de un ítem.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
