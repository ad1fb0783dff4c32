package repository

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// CompanyRepository puerto de persistencia para empresas.
// GetByID devuelve (nil, nil) si no existe.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, limit, offset int) ([]*entity.Company, int, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
