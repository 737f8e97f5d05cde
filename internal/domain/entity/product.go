package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo (multi-bodega).
// El stock por bodega vive en StockRecord, no aquí.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal // precio de venta (lista)
	Cost        decimal.Decimal
	Warranty    string
	Placeholder bool // producto genérico "personalizado", se materializa al guardar la orden
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CustomSKU genera el SKU determinístico de un producto materializado desde
// el placeholder: incrusta el consecutivo de la orden y la posición de la
// línea. Solo es calculable después de que la orden tiene consecutivo.
func CustomSKU(orderSerial int64, position int) string {
	return fmt.Sprintf("CUSTOM-OV%06d-%d", orderSerial, position)
}

// MaterializeFrom crea un producto real clonado del placeholder: mismo
// nombre, categoría y garantía; costo y dimensiones en cero.
func MaterializeFrom(placeholder *Product, id string, orderSerial int64, position int, now time.Time) *Product {
	return &Product{
		ID:        id,
		SKU:       CustomSKU(orderSerial, position),
		Name:      placeholder.Name,
		Category:  placeholder.Category,
		Warranty:  placeholder.Warranty,
		Price:     decimal.Zero,
		Cost:      decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
