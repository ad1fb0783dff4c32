// Package analytics contiene los casos de uso de reportes sobre el libro de inventario:
// productos más vendidos, productos con mayor stock y clientes con más órdenes.
package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain/ledger"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// AnalyticsUseCase expone los reportes. companyID vacío agrega todas las empresas.
//
// Fuente de datos: AnalyticsRepository (consultas read-only, sin bloqueos).
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(analyticsRepo repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo}
}

// BestSellingProducts productos con más unidades vendidas.
func (uc *AnalyticsUseCase) BestSellingProducts(ctx context.Context, companyID string, limit int) (*dto.BestSellingResponse, error) {
	limit = ledger.ClampLimit(limit)
	rows, err := uc.analyticsRepo.BestSellingProducts(ctx, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics: más vendidos: %w", err)
	}
	return &dto.BestSellingResponse{CompanyID: companyID, Limit: limit, Items: bestSellingDTOs(rows)}, nil
}

// HighestStockProducts productos con mayor stock, incluidos los que tienen stock cero.
func (uc *AnalyticsUseCase) HighestStockProducts(ctx context.Context, companyID string, limit int) (*dto.HighestStockResponse, error) {
	limit = ledger.ClampLimit(limit)
	rows, err := uc.analyticsRepo.HighestStockProducts(ctx, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics: mayor stock: %w", err)
	}
	return &dto.HighestStockResponse{CompanyID: companyID, Limit: limit, Items: highestStockDTOs(rows)}, nil
}

// TopCustomers clientes con más órdenes activas.
func (uc *AnalyticsUseCase) TopCustomers(ctx context.Context, companyID string, limit int) (*dto.TopCustomersResponse, error) {
	limit = ledger.ClampLimit(limit)
	rows, err := uc.analyticsRepo.TopCustomers(ctx, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics: clientes: %w", err)
	}
	return &dto.TopCustomersResponse{CompanyID: companyID, Limit: limit, Items: topCustomerDTOs(rows)}, nil
}

// Summary los tres reportes en paralelo; el primer error cancela el resto.
func (uc *AnalyticsUseCase) Summary(ctx context.Context, companyID string, limit int) (*dto.AnalyticsSummaryResponse, error) {
	limit = ledger.ClampLimit(limit)
	var (
		best      []ledger.BestSeller
		stock     []ledger.StockRank
		customers []ledger.CustomerRank
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if best, err = uc.analyticsRepo.BestSellingProducts(gctx, companyID, limit); err != nil {
			return fmt.Errorf("analytics: más vendidos: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if stock, err = uc.analyticsRepo.HighestStockProducts(gctx, companyID, limit); err != nil {
			return fmt.Errorf("analytics: mayor stock: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if customers, err = uc.analyticsRepo.TopCustomers(gctx, companyID, limit); err != nil {
			return fmt.Errorf("analytics: clientes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dto.AnalyticsSummaryResponse{
		CompanyID:    companyID,
		Limit:        limit,
		BestSelling:  bestSellingDTOs(best),
		HighestStock: highestStockDTOs(stock),
		TopCustomers: topCustomerDTOs(customers),
	}, nil
}

func bestSellingDTOs(rows []ledger.BestSeller) []dto.BestSellingProductDTO {
	out := make([]dto.BestSellingProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.BestSellingProductDTO{
			ProductID:         r.ProductID,
			Name:              r.Name,
			Code:              r.Code,
			Type:              string(r.Type),
			TotalQuantitySold: r.TotalQuantitySold,
			TotalRevenue:      r.TotalRevenue.Round(2),
			OrderCount:        r.OrderCount,
		})
	}
	return out
}

func highestStockDTOs(rows []ledger.StockRank) []dto.HighestStockProductDTO {
	out := make([]dto.HighestStockProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.HighestStockProductDTO{
			ProductID:    r.ProductID,
			Name:         r.Name,
			Code:         r.Code,
			Type:         string(r.Type),
			Price:        r.Price,
			CurrentStock: r.CurrentStock,
		})
	}
	return out
}

func topCustomerDTOs(rows []ledger.CustomerRank) []dto.TopCustomerDTO {
	out := make([]dto.TopCustomerDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopCustomerDTO{
			CustomerID:      r.CustomerID,
			Name:            r.Name,
			Email:           r.Email,
			Type:            string(r.Type),
			TotalOrders:     r.TotalOrders,
			TotalOrderValue: r.TotalOrderValue.Round(2),
		})
	}
	return out
}
