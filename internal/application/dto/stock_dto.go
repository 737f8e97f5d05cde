package dto

import "github.com/shopspring/decimal"

// AvailabilityResponse cantidad disponible efectiva de un producto en una
// bodega: actual + transito - reservado.
type AvailabilityResponse struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Actual      decimal.Decimal `json:"actual"`
	Reservado   decimal.Decimal `json:"reservado"`
	Transito    decimal.Decimal `json:"transito"`
	RMA         decimal.Decimal `json:"rma"`
	Available   decimal.Decimal `json:"available"`
}
