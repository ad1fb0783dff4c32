package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain"
)

// LocalErrorCode clave de c.Locals con el código del error respondido (lo lee el middleware de métricas).
const LocalErrorCode = "error_code"

// Códigos de error de la API.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeIncompatibleTypes = "INCOMPATIBLE_TYPES"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeDuplicateNumber   = "DUPLICATE_NUMBER"
	CodeValidation        = "VALIDATION"
	CodeDuplicate         = "DUPLICATE"
	CodeConflict          = "CONFLICT"
	CodeInvalidBody       = "INVALID_BODY"
	CodeMissingCompany    = "MISSING_COMPANY_ID"
	CodeInternal          = "INTERNAL"
)

// writeError traduce un error de dominio a su respuesta HTTP.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	return respondError(c, status, body)
}

func respondError(c *fiber.Ctx, status int, body dto.ErrorResponse) error {
	c.Locals(LocalErrorCode, body.Code)
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var (
		notFound     *domain.NotFoundError
		incompatible *domain.IncompatibleTypesError
		stock        *domain.InsufficientStockError
		invalid      *domain.ValidationError
	)
	switch {
	case errors.As(err, &notFound):
		return fiber.StatusNotFound, dto.ErrorResponse{
			Code: CodeNotFound, Message: err.Error(),
			Details: map[string]any{"entity": notFound.Entity, "id": notFound.ID},
		}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: CodeNotFound, Message: err.Error()}
	case errors.As(err, &incompatible):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{
			Code: CodeIncompatibleTypes, Message: err.Error(),
			Details: map[string]any{
				"product_name":   incompatible.ProductName,
				"product_type":   incompatible.ProductType,
				"warehouse_name": incompatible.WarehouseName,
				"warehouse_type": incompatible.WarehouseType,
			},
		}
	case errors.As(err, &stock):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code: CodeInsufficientStock, Message: err.Error(),
			Details: map[string]any{"product_id": stock.ProductID, "current": stock.Current, "requested": stock.Requested},
		}
	case errors.Is(err, domain.ErrDuplicateNumber):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeDuplicateNumber, Message: err.Error()}
	case errors.As(err, &invalid):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code: CodeValidation, Message: err.Error(),
			Details: map[string]any{"field": invalid.Field, "reason": invalid.Reason},
		}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeDuplicate, Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeConflict, Message: err.Error()}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeInternal, Message: "error interno"}
	}
}

func invalidBody(c *fiber.Ctx) error {
	return respondError(c, fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
}
