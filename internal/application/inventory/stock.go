package inventory

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain/ledger"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// StockUseCase consulta el stock derivado del libro de órdenes.
type StockUseCase struct {
	repos repository.Repos
}

// NewStockUseCase construye el caso de uso sobre repos de lectura (pool).
func NewStockUseCase(repos repository.Repos) *StockUseCase {
	return &StockUseCase{repos: repos}
}

// CurrentStock stock de cualquier producto; un producto inexistente o sin movimientos tiene 0.
func (uc *StockUseCase) CurrentStock(ctx context.Context, productID string) (int64, error) {
	return uc.repos.Ledger.CurrentStock(ctx, productID)
}

// GetProductStock stock de un producto activo de la empresa.
func (uc *StockUseCase) GetProductStock(ctx context.Context, companyID, productID string) (*dto.StockResponse, error) {
	if _, err := ActiveProduct(ctx, uc.repos, companyID, productID); err != nil {
		return nil, err
	}
	stock, err := uc.repos.Ledger.CurrentStock(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{ProductID: productID, CurrentStock: stock}, nil
}

// ProjectStock valida que retirar retract y aplicar apply (efectos con signo) no deje el saldo del
// producto en negativo. Solo consulta el libro si la escritura reduce el saldo. Debe llamarse con
// el bloqueo del producto ya tomado.
func ProjectStock(ctx context.Context, r repository.Repos, productID string, retract, apply int64) error {
	if apply-retract >= 0 {
		return nil
	}
	current, err := r.Ledger.CurrentStock(ctx, productID)
	if err != nil {
		return err
	}
	return ledger.Projection{ProductID: productID, Current: current, Retract: retract, Apply: apply}.Check()
}
