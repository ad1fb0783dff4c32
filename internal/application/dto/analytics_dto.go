package dto

import "github.com/shopspring/decimal"

// BestSellingProductDTO fila del reporte de productos más vendidos.
type BestSellingProductDTO struct {
	ProductID         string          `json:"product_id"`
	Name              string          `json:"name"`
	Code              string          `json:"code"`
	Type              string          `json:"type"`
	TotalQuantitySold int64           `json:"total_quantity_sold"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	OrderCount        int64           `json:"order_count"`
}

// HighestStockProductDTO fila del reporte de productos con mayor stock.
type HighestStockProductDTO struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	Type         string          `json:"type"`
	Price        decimal.Decimal `json:"price"`
	CurrentStock int64           `json:"current_stock"`
}

// TopCustomerDTO fila del reporte de clientes con más órdenes.
type TopCustomerDTO struct {
	CustomerID      string          `json:"customer_id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Type            string          `json:"type"`
	TotalOrders     int64           `json:"total_orders"`
	TotalOrderValue decimal.Decimal `json:"total_order_value"`
}

// BestSellingResponse reporte de productos más vendidos.
type BestSellingResponse struct {
	CompanyID string                  `json:"company_id,omitempty"`
	Limit     int                     `json:"limit"`
	Items     []BestSellingProductDTO `json:"items"`
}

// HighestStockResponse reporte de productos con mayor stock.
type HighestStockResponse struct {
	CompanyID string                   `json:"company_id,omitempty"`
	Limit     int                      `json:"limit"`
	Items     []HighestStockProductDTO `json:"items"`
}

// TopCustomersResponse reporte de clientes con más órdenes.
type TopCustomersResponse struct {
	CompanyID string           `json:"company_id,omitempty"`
	Limit     int              `json:"limit"`
	Items     []TopCustomerDTO `json:"items"`
}

// AnalyticsSummaryResponse los tres reportes calculados en paralelo.
type AnalyticsSummaryResponse struct {
	CompanyID    string                   `json:"company_id,omitempty"`
	Limit        int                      `json:"limit"`
	BestSelling  []BestSellingProductDTO  `json:"best_selling"`
	HighestStock []HighestStockProductDTO `json:"highest_stock"`
	TopCustomers []TopCustomerDTO         `json:"top_customers"`
}
