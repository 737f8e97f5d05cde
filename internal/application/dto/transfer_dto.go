package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferItemRequest línea de un traslado (creación o reemplazo en bloque).
type TransferItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	Note      string          `json:"note" validate:"omitempty,max=500"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	FromWarehouseID string                `json:"from_warehouse_id" validate:"required,uuid"`
	ToWarehouseID   string                `json:"to_warehouse_id" validate:"required,uuid"`
	Items           []TransferItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateTransferRequest body para PUT /api/transfers/:id. Las líneas se
// reemplazan en bloque (solo traslados PENDING).
type UpdateTransferRequest struct {
	Items []TransferItemRequest `json:"items" validate:"required,min=1,dive"`
}

// TransitionTransferRequest body para POST /api/transfers/:id/status.
type TransitionTransferRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED IN_TRANSIT RECEIVED CANCELLED"`
	Note   string `json:"note" validate:"omitempty,max=500"`
}

// TransferItemResponse línea en respuestas.
type TransferItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Note      string          `json:"note,omitempty"`
}

// TransferResponse traslado con líneas anidadas.
type TransferResponse struct {
	ID              string                 `json:"id"`
	Serial          string                 `json:"serial"`
	Status          string                 `json:"status"`
	FromWarehouseID string                 `json:"from_warehouse_id"`
	ToWarehouseID   string                 `json:"to_warehouse_id"`
	RequestedBy     string                 `json:"requested_by"`
	ApprovedBy      string                 `json:"approved_by,omitempty"`
	Items           []TransferItemResponse `json:"items"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// HistoryEntryResponse entrada del historial en respuestas.
type HistoryEntryResponse struct {
	Status    string    `json:"status"`
	ActorID   string    `json:"actor_id"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
