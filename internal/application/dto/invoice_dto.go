package dto

import "time"

// UpdateInvoiceStatusRequest cambio de estado de cobro.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid cancelled overdue"`
}

// InvoiceResponse salida de una factura.
type InvoiceResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	OrderID   string    `json:"order_id"`
	Number    string    `json:"number"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvoiceListResponse lista paginada de facturas.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
