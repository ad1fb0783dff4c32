package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
)

// HeaderCompanyID cabecera con la empresa (tenant) de la petición.
const HeaderCompanyID = "X-Company-ID"

// LocalCompanyID clave de c.Locals con la empresa de la petición.
const LocalCompanyID = "company_id"

// TenantMiddleware exige la cabecera X-Company-ID con un UUID y la deja en c.Locals.
func TenantMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := c.Get(HeaderCompanyID)
		if companyID == "" {
			return respondError(c, fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeMissingCompany, Message: HeaderCompanyID + " requerido"})
		}
		if _, err := uuid.Parse(companyID); err != nil {
			return respondError(c, fiber.StatusBadRequest, dto.ErrorResponse{
				Code: CodeValidation, Message: HeaderCompanyID + " debe ser un UUID",
				Details: map[string]any{"field": "company_id"},
			})
		}
		c.Locals(LocalCompanyID, companyID)
		return c.Next()
	}
}

// GetCompanyID devuelve el CompanyID del contexto (después de TenantMiddleware).
func GetCompanyID(c *fiber.Ctx) string {
	v := c.Locals(LocalCompanyID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// pageFromQuery lee limit/offset; el caso de uso normaliza los valores.
func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
}

// pathID lee :id. Un valor que no es UUID no identifica ningún registro: NotFound de la entidad.
func pathID(c *fiber.Ctx, entity string) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", domain.NotFound(entity, id)
	}
	return id, nil
}

// queryID lee un filtro opcional por id; si viene debe ser un UUID.
func queryID(c *fiber.Ctx, key string) (string, error) {
	id := c.Query(key)
	if id == "" {
		return "", nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", domain.Invalid(key, "debe ser un UUID")
	}
	return id, nil
}
