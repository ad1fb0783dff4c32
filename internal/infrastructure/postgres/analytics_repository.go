package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/ledger"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para los reportes. No toma bloqueos: lee el último
// estado confirmado.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// BestSellingProducts agrupa ítems de órdenes de venta por producto activo.
// Orden: cantidad vendida desc, ingreso desc.
func (r *AnalyticsRepo) BestSellingProducts(ctx context.Context, companyID string, limit int) ([]ledger.BestSeller, error) {
	limit = ledger.ClampLimit(limit)
	const query = `
	SELECT
	    p.id::text,
	    p.name,
	    p.code,
	    p.type,
	    SUM(oi.quantity)::bigint            AS total_quantity_sold,
	    SUM(oi.quantity * oi.price)         AS total_revenue,
	    COUNT(DISTINCT o.id)                AS order_count
	FROM order_items oi
	JOIN orders   o ON o.id = oi.order_id
	JOIN products p ON p.id = oi.product_id
	WHERE oi.deleted_at IS NULL
	  AND o.deleted_at  IS NULL
	  AND p.deleted_at  IS NULL
	  AND o.type = $3
	  AND ($1::uuid IS NULL OR o.company_id = $1)
	GROUP BY p.id, p.name, p.code, p.type
	ORDER BY total_quantity_sold DESC, total_revenue DESC, p.code, p.id
	LIMIT $2`

	rows, err := r.q.Query(ctx, query, nullableID(companyID), limit, string(entity.OrderTypeSales))
	if err != nil {
		return nil, fmt.Errorf("analytics.BestSellingProducts: %w", err)
	}
	defer rows.Close()

	results := make([]ledger.BestSeller, 0, limit)
	for rows.Next() {
		var (
			row ledger.BestSeller
			typ string
		)
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Code, &typ,
			&row.TotalQuantitySold, &row.TotalRevenue, &row.OrderCount); err != nil {
			return nil, fmt.Errorf("analytics.BestSellingProducts scan: %w", err)
		}
		row.Type = entity.ProductType(typ)
		results = append(results, row)
	}
	return results, rows.Err()
}

var highestStockQuery = `
	SELECT
	    p.id::text,
	    p.name,
	    p.code,
	    p.type,
	    p.price,
	    COALESCE(SUM(` + stockDeltaSQL("o.type", "oi.quantity") + `), 0)::bigint AS current_stock
	FROM products p
	LEFT JOIN order_items oi ON oi.product_id = p.id AND oi.deleted_at IS NULL
	LEFT JOIN orders      o  ON o.id = oi.order_id AND o.deleted_at IS NULL
	WHERE p.deleted_at IS NULL
	  AND ($1::uuid IS NULL OR p.company_id = $1)
	GROUP BY p.id, p.name, p.code, p.type, p.price
	ORDER BY current_stock DESC, p.code, p.id
	LIMIT $2`

// HighestStockProducts stock derivado de cada producto activo, incluidos los que están en cero.
func (r *AnalyticsRepo) HighestStockProducts(ctx context.Context, companyID string, limit int) ([]ledger.StockRank, error) {
	limit = ledger.ClampLimit(limit)
	rows, err := r.q.Query(ctx, highestStockQuery, nullableID(companyID), limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.HighestStockProducts: %w", err)
	}
	defer rows.Close()

	results := make([]ledger.StockRank, 0, limit)
	for rows.Next() {
		var (
			row ledger.StockRank
			typ string
		)
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Code, &typ, &row.Price, &row.CurrentStock); err != nil {
			return nil, fmt.Errorf("analytics.HighestStockProducts scan: %w", err)
		}
		row.Type = entity.ProductType(typ)
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopCustomers órdenes activas y valor de sus ítems activos por cliente.
// Orden: número de órdenes desc, valor desc.
func (r *AnalyticsRepo) TopCustomers(ctx context.Context, companyID string, limit int) ([]ledger.CustomerRank, error) {
	limit = ledger.ClampLimit(limit)
	const query = `
	SELECT
	    c.id::text,
	    c.name,
	    c.email,
	    c.type,
	    COUNT(DISTINCT o.id)                          AS total_orders,
	    COALESCE(SUM(oi.quantity * oi.price), 0)      AS total_order_value
	FROM customers c
	JOIN orders o            ON o.customer_id = c.id AND o.deleted_at IS NULL
	LEFT JOIN order_items oi ON oi.order_id = o.id AND oi.deleted_at IS NULL
	WHERE c.deleted_at IS NULL
	  AND ($1::uuid IS NULL OR o.company_id = $1)
	GROUP BY c.id, c.name, c.email, c.type
	ORDER BY total_orders DESC, total_order_value DESC, c.name, c.id
	LIMIT $2`

	rows, err := r.q.Query(ctx, query, nullableID(companyID), limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopCustomers: %w", err)
	}
	defer rows.Close()

	results := make([]ledger.CustomerRank, 0, limit)
	for rows.Next() {
		var (
			row ledger.CustomerRank
			typ string
		)
		if err := rows.Scan(&row.CustomerID, &row.Name, &row.Email, &typ, &row.TotalOrders, &row.TotalOrderValue); err != nil {
			return nil, fmt.Errorf("analytics.TopCustomers scan: %w", err)
		}
		row.Type = entity.CustomerType(typ)
		results = append(results, row)
	}
	return results, rows.Err()
}
