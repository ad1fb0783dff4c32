package dto

// StockResponse stock derivado de un producto.
type StockResponse struct {
	ProductID    string `json:"product_id"`
	CurrentStock int64  `json:"current_stock"`
}

// CompatibilityResponse resultado del chequeo producto/bodega para una orden.
type CompatibilityResponse struct {
	OrderID    string `json:"order_id"`
	ProductID  string `json:"product_id"`
	Compatible bool   `json:"compatible"`
}
