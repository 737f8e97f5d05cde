package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/application/orders"
)

// OrderHandler maneja las peticiones HTTP de órdenes: cotizaciones, ventas,
// ventas a crédito y reposiciones (protegido).
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden
// @Description  kind: QUOTATION | SALE | CREDIT_SALE | REPLENISHMENT. Toda orden
//               nace en PENDING. Las líneas con producto placeholder se materializan
//               con SKU determinístico al guardar.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "kind, customer_id/supplier_id, discount, items"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar líneas de una orden
// @Description  Diff por ID de línea: ausentes se borran, con ID se actualizan en
//               sitio, sin ID se insertan. Solo en estados editables. Los totales se
//               recalculan.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderRequest  true  "discount, items"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Transition godoc
// @Summary      Transicionar el estado de una orden
// @Description  El grafo permitido depende del tipo. Confirmar una venta emite la
//               factura en la cuenta del cliente dentro de la misma transacción;
//               una venta a crédito valida además el cupo disponible.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la orden"
// @Param        body  body  dto.TransitionOrderRequest  true  "status, note"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [post]
func (h *OrderHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionOrderRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Transition(c.Context(), GetUserID(c), c.Params("id"), in.Status, in.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Convert godoc
// @Summary      Convertir cotización en venta
// @Description  Cambia el tipo en sitio conservando consecutivo, líneas y estado.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/convert [post]
func (h *OrderHandler) Convert(c *fiber.Ctx) error {
	out, err := h.uc.ConvertQuotation(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener una orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de estados de una orden
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {array}   dto.HistoryEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/history [get]
func (h *OrderHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        kind    query  string  false  "Filtrar por tipo (QUOTATION, SALE, CREDIT_SALE, REPLENISHMENT)"
// @Param        limit   query  int     false  "Máximo de resultados (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("kind"), parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
