package repository

// Repos agrupa los repositorios atados a una misma unidad de trabajo (pool o transacción).
type Repos struct {
	Companies  CompanyRepository
	Customers  CustomerRepository
	Products   ProductRepository
	Warehouses WarehouseRepository
	Orders     OrderRepository
	OrderItems OrderItemRepository
	Invoices   InvoiceRepository
	Sequences  SequenceRepository
	Ledger     LedgerRepository
}
