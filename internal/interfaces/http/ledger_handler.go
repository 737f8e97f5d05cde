package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/application/ledger"
)

// LedgerHandler maneja las peticiones HTTP del libro de clientes (protegido).
type LedgerHandler struct {
	uc *ledger.UseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.UseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// CreateAccount godoc
// @Summary      Crear cuenta de cliente
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccountRequest  true  "name, tax_id, credit_limit, credit_enabled"
// @Success      201   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ledger/accounts [post]
func (h *LedgerHandler) CreateAccount(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.CreateAccount(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetAccount godoc
// @Summary      Obtener cuenta de cliente
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.AccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/accounts/{id} [get]
func (h *LedgerHandler) GetAccount(c *fiber.Ctx) error {
	out, err := h.uc.GetAccount(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAccounts godoc
// @Summary      Listar cuentas de cliente
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de resultados (default 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.AccountResponse
// @Router       /api/ledger/accounts [get]
func (h *LedgerHandler) ListAccounts(c *fiber.Ctx) error {
	out, err := h.uc.ListAccounts(c.Context(), parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Record godoc
// @Summary      Registrar transacción del libro
// @Description  INVOICE, DEBIT_NOTE y CASH_ADVANCE suman al balance; CREDIT_NOTE
//               resta; PAYMENT y REFUND quedan PENDING y solo afectan el balance
//               al confirmarse.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordEntryRequest  true  "account_id, kind, amount, note"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ledger/transactions [post]
func (h *LedgerHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordEntryRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Record(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ConfirmPayment godoc
// @Summary      Confirmar un abono o reembolso PENDING
// @Description  Aplica el efecto monetario exactamente una vez; un segundo intento
//               responde 409.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.LedgerEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ledger/transactions/{id}/confirm [post]
func (h *LedgerHandler) ConfirmPayment(c *fiber.Ctx) error {
	out, err := h.uc.ConfirmPayment(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RejectPayment godoc
// @Summary      Rechazar un abono o reembolso PENDING
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.LedgerEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ledger/transactions/{id}/reject [post]
func (h *LedgerHandler) RejectPayment(c *fiber.Ctx) error {
	out, err := h.uc.RejectPayment(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListEntries godoc
// @Summary      Listar transacciones de una cuenta
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la cuenta"
// @Param        limit   query  int     false  "Máximo de resultados (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.LedgerEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ledger/accounts/{id}/transactions [get]
func (h *LedgerHandler) ListEntries(c *fiber.Ctx) error {
	out, err := h.uc.ListEntries(c.Context(), c.Params("id"), parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
