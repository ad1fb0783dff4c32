package repository

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// ProductFilter criterios de listado. Campos vacíos no filtran.
type ProductFilter struct {
	CompanyID string
	Type      entity.ProductType
	Search    string
}

// ProductRepository puerto de persistencia para productos.
// Los listados y GetByCode excluyen eliminados; GetByID no, el llamador decide.
type ProductRepository interface {
	// Create devuelve domain.ErrDuplicate si el código ya existe en la empresa.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, companyID, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, int, error)
	CountByType(ctx context.Context, companyID string) (map[entity.ProductType]int64, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
