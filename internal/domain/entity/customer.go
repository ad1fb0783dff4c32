package entity

import "time"

// CustomerType distingue clientes de proveedores.
type CustomerType string

const (
	CustomerTypeCustomer CustomerType = "customer"
	CustomerTypeSupplier CustomerType = "supplier"
)

// Valid indica si el tipo pertenece al catálogo.
func (t CustomerType) Valid() bool {
	return t == CustomerTypeCustomer || t == CustomerTypeSupplier
}

// Customer representa un cliente o proveedor de la empresa; es la contraparte de las órdenes.
type Customer struct {
	ID        string
	CompanyID string
	Type      CustomerType
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsDeleted indica si el cliente fue eliminado lógicamente.
func (c *Customer) IsDeleted() bool { return c.DeletedAt != nil }
