package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-api/internal/application/analytics"
	"github.com/jhoicas/warehouse-api/internal/domain"
)

// AnalyticsHandler reportes de solo lectura. La empresa es opcional: sin ella se agregan todas.
type AnalyticsHandler struct {
	uc *analytics.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// scope lee company_id (query o cabecera) y limit.
func scope(c *fiber.Ctx) (string, int, error) {
	companyID := c.Query("company_id", c.Get(HeaderCompanyID))
	if companyID != "" {
		if _, err := uuid.Parse(companyID); err != nil {
			return "", 0, domain.Invalid("company_id", "debe ser un UUID")
		}
	}
	return companyID, c.QueryInt("limit", 0), nil
}

// BestSelling godoc
// @Summary      Productos más vendidos
// @Tags         analytics
// @Produce      json
// @Param        company_id  query  string  false  "Empresa"
// @Param        limit       query  int     false  "Límite"  default(10)
// @Success      200  {object}  dto.BestSellingResponse
// @Router       /api/analytics/best-selling-products [get]
func (h *AnalyticsHandler) BestSelling(c *fiber.Ctx) error {
	companyID, limit, err := scope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.BestSellingProducts(c.UserContext(), companyID, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// HighestStock godoc
// @Summary      Productos con mayor stock
// @Tags         analytics
// @Produce      json
// @Param        company_id  query  string  false  "Empresa"
// @Param        limit       query  int     false  "Límite"  default(10)
// @Success      200  {object}  dto.HighestStockResponse
// @Router       /api/analytics/highest-stock-products [get]
func (h *AnalyticsHandler) HighestStock(c *fiber.Ctx) error {
	companyID, limit, err := scope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.HighestStockProducts(c.UserContext(), companyID, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TopCustomers godoc
// @Summary      Clientes con más órdenes
// @Tags         analytics
// @Produce      json
// @Param        company_id  query  string  false  "Empresa"
// @Param        limit       query  int     false  "Límite"  default(10)
// @Success      200  {object}  dto.TopCustomersResponse
// @Router       /api/analytics/top-customers [get]
func (h *AnalyticsHandler) TopCustomers(c *fiber.Ctx) error {
	companyID, limit, err := scope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.TopCustomers(c.UserContext(), companyID, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Los tres reportes en una respuesta
// @Tags         analytics
// @Produce      json
// @Param        company_id  query  string  false  "Empresa"
// @Param        limit       query  int     false  "Límite"  default(10)
// @Success      200  {object}  dto.AnalyticsSummaryResponse
// @Router       /api/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	companyID, limit, err := scope(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Summary(c.UserContext(), companyID, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
