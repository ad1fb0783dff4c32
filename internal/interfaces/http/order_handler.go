package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/application/orders"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// OrderHandler maneja las peticiones HTTP para órdenes.
type OrderHandler struct {
	uc     *orders.OrderUseCase
	guard  *inventory.OrderItemGuard
	compat *inventory.CompatibilityValidator
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.OrderUseCase, guard *inventory.OrderItemGuard, compat *inventory.CompatibilityValidator) *OrderHandler {
	return &OrderHandler{uc: uc, guard: guard, compat: compat}
}

// Create godoc
// @Summary      Crear orden
// @Description  Asigna el número ORD-YY-NNNNNN. Las órdenes de venta emiten su factura en la misma transacción.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-Company-ID  header  string  true  "Empresa"
// @Param        body  body  dto.CreateOrderRequest  true  "Datos de la orden"
// @Success      201   {object}  dto.CreateOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validateBody(&in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden con ítems, total y factura
// @Tags         orders
// @Produce      json
// @Param        X-Company-ID  header  string  true  "Empresa"
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, domain.EntityOrder)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Produce      json
// @Param        X-Company-ID  header  string  true  "Empresa"
// @Param        type          query  string  false  "sales | purchase | transfer"
// @Param        customer_id   query  string  false  "Cliente"
// @Param        warehouse_id  query  string  false  "Bodega"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	customerID, err := queryID(c, "customer_id")
	if err != nil {
		return writeError(c, err)
	}
	warehouseID, err := queryID(c, "warehouse_id")
	if err != nil {
		return writeError(c, err)
	}
	filter := repository.OrderFilter{
		CompanyID:   GetCompanyID(c),
		Type:        entity.OrderType(c.Query("type")),
		CustomerID:  customerID,
		WarehouseID: warehouseID,
	}
	out, err := h.uc.List(c.UserContext(), filter, pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar orden
// @Description  Tipo y número no cambian. Un cambio de bodega revalida todos los ítems.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        X-Company-ID  header  string  true  "Empresa"
// @Param        id    path  string                  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderRequest  true  "Cambios"
// @Success      200   {object}  dto.OrderResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := validateBody(&in); err != nil {
		return writeError(c, err)
	}
	id, err := pathID(c, domain.EntityOrder)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden (lógico)
// @Description  Anula la factura de una venta. Una compra solo se elimina si el stock no queda negativo.
// @Tags         orders
// @Param        X-Company-ID  header  string  true  "Empresa"
// @Param        id   path  string  true  "ID de la orden"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, domain.EntityOrder)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Items godoc
// @Summary      Ítems activos de una orden
// @Tags         orders
// @Produce      json
// @Param        X-Company-ID  header  string  true  "Empresa"
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {array}   dto.OrderItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/items [get]
func (h *OrderHandler) Items(c *fiber.Ctx) error {
	id, err := pathID(c, domain.EntityOrder)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.guard.ListByOrder(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Compatibility godoc
// @Summary      Verificar producto contra la bodega de la orden
// @Tags         orders
// @Produce      json
// @Param        X-Company-ID  header  string  true  "Empresa"
// @Param        id          path   string  true  "ID de la orden"
// @Param        product_id  query  string  true  "ID del producto"
// @Success      200  {object}  dto.CompatibilityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/compatibility [get]
func (h *OrderHandler) Compatibility(c *fiber.Ctx) error {
	orderID, err := pathID(c, domain.EntityOrder)
	if err != nil {
		return writeError(c, err)
	}
	productID := c.Query("product_id")
	if productID == "" {
		return writeError(c, domain.Invalid("product_id", "requerido"))
	}
	if _, err := uuid.Parse(productID); err != nil {
		return writeError(c, domain.NotFound(domain.EntityProduct, productID))
	}
	if err := h.compat.Check(c.UserContext(), GetCompanyID(c), productID, orderID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CompatibilityResponse{OrderID: orderID, ProductID: productID, Compatible: true})
}
