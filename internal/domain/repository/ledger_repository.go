package repository

import "context"

// LedgerRepository lecturas y bloqueos del libro de inventario. Los bloqueos duran hasta el fin
// de la transacción y solo tienen efecto dentro de una.
//
// Orden de adquisición: orden -> productos -> bodega. Quien modifica una bodega o un producto
// toma únicamente su propio bloqueo exclusivo.
type LedgerRepository interface {
	// LockProducts bloqueo exclusivo sobre los productos, en orden ascendente; ids inexistentes se ignoran.
	LockProducts(ctx context.Context, productIDs ...string) error
	// LockOrder bloqueo compartido (exclusive=false) o exclusivo sobre la orden.
	LockOrder(ctx context.Context, orderID string, exclusive bool) error
	// LockWarehouse bloqueo compartido (exclusive=false) o exclusivo sobre la bodega.
	LockWarehouse(ctx context.Context, warehouseID string, exclusive bool) error
	// CurrentStock suma con signo de ítems activos de órdenes activas. Producto sin movimientos = 0.
	CurrentStock(ctx context.Context, productID string) (int64, error)
}
