package repository

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/ledger"
)

// AnalyticsRepository consultas de lectura para los reportes. companyID vacío = todas las empresas.
// Las implementaciones son read-only y no toman bloqueos.
type AnalyticsRepository interface {
	BestSellingProducts(ctx context.Context, companyID string, limit int) ([]ledger.BestSeller, error)
	HighestStockProducts(ctx context.Context, companyID string, limit int) ([]ledger.StockRank, error)
	TopCustomers(ctx context.Context, companyID string, limit int) ([]ledger.CustomerRank, error)
}
