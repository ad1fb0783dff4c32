package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrIncompatibleTypes = errors.New("tipo de producto incompatible con la bodega")
	ErrDuplicateNumber   = errors.New("número de documento duplicado")
)

// Entidades reportadas en NotFoundError.
const (
	EntityCompany   = "company"
	EntityCustomer  = "customer"
	EntityProduct   = "product"
	EntityWarehouse = "warehouse"
	EntityOrder     = "order"
	EntityOrderItem = "order_item"
	EntityInvoice   = "invoice"
)

// NotFoundError la entidad referenciada no existe, está eliminada o pertenece a otra empresa.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NotFound construye un NotFoundError.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError entrada fuera de dominio en un campo concreto.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IncompatibleTypesError el tipo del producto no coincide con el de la bodega de la orden.
type IncompatibleTypesError struct {
	ProductName   string
	ProductType   string
	WarehouseName string
	WarehouseType string
}

func (e *IncompatibleTypesError) Error() string {
	return fmt.Sprintf("el producto '%s' (tipo: %s) no es compatible con la bodega '%s' (tipo: %s)",
		e.ProductName, e.ProductType, e.WarehouseName, e.WarehouseType)
}

func (e *IncompatibleTypesError) Unwrap() error { return ErrIncompatibleTypes }

// InsufficientStockError la escritura dejaría el stock del producto en negativo.
type InsufficientStockError struct {
	ProductID string
	Current   int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente. Stock actual: %d, solicitado: %d", e.Current, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
