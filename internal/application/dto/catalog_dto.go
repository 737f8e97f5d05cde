package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWarehouseRequest body para POST /api/warehouses.
type CreateWarehouseRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

// WarehouseResponse bodega en respuestas.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU      string          `json:"sku" validate:"required,min=1,max=64"`
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Category string          `json:"category" validate:"omitempty,max=100"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	Warranty string          `json:"warranty" validate:"omitempty,max=500"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Category    string          `json:"category,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Warranty    string          `json:"warranty,omitempty"`
	Placeholder bool            `json:"placeholder"`
	CreatedAt   time.Time       `json:"created_at"`
}
