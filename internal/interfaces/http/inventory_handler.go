package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
)

// OrderItemHandler maneja los ítems de orden. Toda mutación pasa por el guardián de stock.
type OrderItemHandler struct {
	guard *inventory.OrderItemGuard
}

// NewOrderItemHandler construye el handler.
func NewOrderItemHandler(guard *inventory.OrderItemGuard) *OrderItemHandler {
	return &OrderItemHandler{guard: guard}
}

// Create godoc
// @Summary      Agregar ítem a una orden
// @Description  Valida compatibilidad producto/bodega y que el stock no quede negativo.
// @Tags         order-items
// @Accept       json
// @Produce      json
// @Param        X-Company-ID  header  string  true  "Empresa"
// @Param        body  body  dto.CreateOrderItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.OrderItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/order-items [post]
func (h *OrderItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validateBody(&in); err != nil {
		return writeError(c, err)
	}
	out, err := h.guard.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ítem
// @Tags         order-items
// @Produce      json
// @Param        X-Company-ID  header  string  true  "Empresa"
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {object}  dto.OrderItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/order-items/{id} [get]
func (h *OrderItemHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, domain.EntityOrderItem)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.guard.GetByID(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar ítem
// @Description  El efecto anterior se retira antes de aplicar el nuevo.
// @Tags         order-items
// @Accept       json
// @Produce      json
// @Param        X-Company-ID  header  string  true  "Empresa"
// @Param        id    path  string                      true  "ID del ítem"
// @Param        body  body  dto.UpdateOrderItemRequest  true  "Cambios"
// @Success      200   {object}  dto.OrderItemResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/order-items/{id} [put]
func (h *OrderItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validateBody(&in); err != nil {
		return writeError(c, err)
	}
	id, err := pathID(c, domain.EntityOrderItem)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.guard.Update(c.UserContext(), GetCompanyID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ítem (lógico)
// @Tags         order-items
// @Param        X-Company-ID  header  string  true  "Empresa"
// @Param        id   path  string  true  "ID del ítem"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/order-items/{id} [delete]
func (h *OrderItemHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, domain.EntityOrderItem)
	if err != nil {
		return writeError(c, err)
	}
	deleted, err := h.guard.Delete(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	if !deleted {
		return writeError(c, domain.NotFound(domain.EntityOrderItem, id))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
