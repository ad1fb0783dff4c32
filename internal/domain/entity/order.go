package entity

import "time"

// OrderType tipo de orden; define el efecto sobre el stock y si emite factura.
type OrderType string

const (
	OrderTypeSales    OrderType = "sales"
	OrderTypePurchase OrderType = "purchase"
	OrderTypeTransfer OrderType = "transfer"
)

// orderPolicy comportamiento asociado a cada tipo de orden.
type orderPolicy struct {
	stockSign     int64
	issuesInvoice bool
}

// orderPolicies tabla de despacho por tipo. Es la única fuente del signo de stock;
// el SQL de stock se genera a partir de ella.
var orderPolicies = map[OrderType]orderPolicy{
	OrderTypePurchase: {stockSign: +1},
	OrderTypeSales:    {stockSign: -1, issuesInvoice: true},
	OrderTypeTransfer: {stockSign: -1},
}

// OrderTypes devuelve los tipos conocidos en orden estable.
func OrderTypes() []OrderType {
	return []OrderType{OrderTypeSales, OrderTypePurchase, OrderTypeTransfer}
}

// Valid indica si el tipo pertenece al catálogo.
func (t OrderType) Valid() bool {
	_, ok := orderPolicies[t]
	return ok
}

// StockSign +1 si la orden acredita stock, -1 si lo debita, 0 para tipos desconocidos.
func (t OrderType) StockSign() int64 {
	return orderPolicies[t].stockSign
}

// Debits indica si los ítems de este tipo de orden descuentan stock.
func (t OrderType) Debits() bool { return t.StockSign() < 0 }

// IssuesInvoice indica si crear la orden emite una factura.
func (t OrderType) IssuesInvoice() bool {
	return orderPolicies[t].issuesInvoice
}

// Order representa una orden de venta, compra o traslado de una empresa.
// Number se asigna al crear y no se reasigna.
type Order struct {
	ID          string
	CompanyID   string
	Number      string
	Type        OrderType
	CustomerID  string
	WarehouseID string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// IsDeleted indica si la orden fue eliminada lógicamente.
func (o *Order) IsDeleted() bool { return o.DeletedAt != nil }
