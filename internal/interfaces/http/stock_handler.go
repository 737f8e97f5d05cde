package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/distribucion-api/internal/application/stockquery"
)

// StockHandler maneja las consultas de disponibilidad de stock (protegido).
type StockHandler struct {
	uc *stockquery.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stockquery.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Availability godoc
// @Summary      Disponibilidad de un producto en una bodega
// @Description  Devuelve los cuatro contadores y la disponibilidad efectiva
//               (actual + transito - reservado). Un par nunca tocado reporta ceros.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true  "ID del producto"
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/availability [get]
func (h *StockHandler) Availability(c *fiber.Ctx) error {
	out, err := h.uc.Availability(c.Context(), c.Query("product_id"), c.Query("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Levels godoc
// @Summary      Niveles de stock de una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path  string  true  "ID de la bodega"
// @Success      200  {array}   dto.AvailabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/warehouses/{warehouse_id}/levels [get]
func (h *StockHandler) Levels(c *fiber.Ctx) error {
	out, err := h.uc.Levels(c.Context(), c.Params("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
