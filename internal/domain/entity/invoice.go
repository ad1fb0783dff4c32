package entity

import "time"

// InvoiceStatus estado de cobro de la factura.
type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
)

// Valid indica si el estado pertenece al catálogo.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusCancelled, InvoiceStatusOverdue:
		return true
	}
	return false
}

// Invoice factura emitida automáticamente al crear una orden de venta (una por orden).
type Invoice struct {
	ID        string
	CompanyID string
	OrderID   string
	Number    string
	Date      time.Time
	Status    InvoiceStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsDeleted indica si la factura fue eliminada lógicamente.
func (i *Invoice) IsDeleted() bool { return i.DeletedAt != nil }
