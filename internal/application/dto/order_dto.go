package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de una orden. ID vacío = línea nueva; con ID se
// actualiza en sitio (el diff lo hace el caso de uso).
type OrderItemRequest struct {
	ID          string          `json:"id" validate:"omitempty,uuid"`
	ProductID   string          `json:"product_id" validate:"required,uuid"`
	WarehouseID string          `json:"warehouse_id" validate:"omitempty,uuid"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Warranty    string          `json:"warranty" validate:"omitempty,max=500"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Kind       string             `json:"kind" validate:"required,oneof=QUOTATION SALE CREDIT_SALE REPLENISHMENT"`
	CustomerID string             `json:"customer_id" validate:"omitempty,uuid"`
	SupplierID string             `json:"supplier_id" validate:"omitempty,uuid"`
	Discount   decimal.Decimal    `json:"discount"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderRequest body para PUT /api/orders/:id. Las líneas se comparan
// por ID: ausentes se borran, con ID coincidente se actualizan, sin ID se
// insertan.
type UpdateOrderRequest struct {
	Discount decimal.Decimal    `json:"discount"`
	Items    []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// TransitionOrderRequest body para POST /api/orders/:id/status.
type TransitionOrderRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED CONFIRMED SHIPPED DELIVERED RECEIVED CANCELLED"`
	Note   string `json:"note" validate:"omitempty,max=500"`
}

// OrderItemResponse línea en respuestas.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Warranty    string          `json:"warranty,omitempty"`
}

// OrderResponse orden con líneas anidadas y campos financieros calculados.
type OrderResponse struct {
	ID         string              `json:"id"`
	Serial     string              `json:"serial"`
	Kind       string              `json:"kind"`
	Status     string              `json:"status"`
	CustomerID string              `json:"customer_id,omitempty"`
	SupplierID string              `json:"supplier_id,omitempty"`
	Items      []OrderItemResponse `json:"items"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	Discount   decimal.Decimal     `json:"discount"`
	Tax        decimal.Decimal     `json:"tax"`
	GrandTotal decimal.Decimal     `json:"grand_total"`
	ListTotal  decimal.Decimal     `json:"list_total"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}
