package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/distribucion-api/internal/domain"
)

// Nombres de contadores de stock (para errores y auditoría).
const (
	CounterActual    = "actual"
	CounterReservado = "reservado"
	CounterTransito  = "transito"
	CounterRMA       = "rma"
)

// StockRecord representa los contadores de un producto en una bodega.
// Se crea perezosamente en cero la primera vez que un traslado u orden
// toca el par (producto, bodega); nunca se borra.
type StockRecord struct {
	ProductID   string
	WarehouseID string
	Actual      decimal.Decimal // disponible en bodega
	Reservado   decimal.Decimal // comprometido, aún no despachado
	Transito    decimal.Decimal // en camino hacia esta bodega
	RMA         decimal.Decimal // devuelto, pendiente de disposición
	UpdatedAt   time.Time
}

// NewStockRecord crea un registro en cero para el par (producto, bodega).
func NewStockRecord(productID, warehouseID string) *StockRecord {
	return &StockRecord{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Actual:      decimal.Zero,
		Reservado:   decimal.Zero,
		Transito:    decimal.Zero,
		RMA:         decimal.Zero,
	}
}

// Available devuelve la cantidad efectiva disponible: actual + transito - reservado.
func (s *StockRecord) Available() decimal.Decimal {
	return s.Actual.Add(s.Transito).Sub(s.Reservado)
}

// StockDelta deltas con signo a aplicar sobre un StockRecord.
type StockDelta struct {
	Actual    decimal.Decimal
	Reservado decimal.Decimal
	Transito  decimal.Decimal
	RMA       decimal.Decimal
}

// Add combina dos deltas campo a campo.
func (d StockDelta) Add(o StockDelta) StockDelta {
	return StockDelta{
		Actual:    d.Actual.Add(o.Actual),
		Reservado: d.Reservado.Add(o.Reservado),
		Transito:  d.Transito.Add(o.Transito),
		RMA:       d.RMA.Add(o.RMA),
	}
}

// IsZero indica si el delta no modifica ningún contador.
func (d StockDelta) IsZero() bool {
	return d.Actual.IsZero() && d.Reservado.IsZero() && d.Transito.IsZero() && d.RMA.IsZero()
}

// StockChange un delta dirigido a un par (producto, bodega) concreto.
// Las máquinas de estado producen listas de StockChange que el caso de uso
// aplica bajo bloqueo de fila dentro de una sola transacción.
type StockChange struct {
	ProductID   string
	WarehouseID string
	Delta       StockDelta
}

// ApplyDelta aplica los deltas sobre el registro. Invariante dura: ningún
// contador puede quedar negativo; en ese caso no se modifica nada y se
// retorna InsufficientStockError con el contador ofensor.
func (s *StockRecord) ApplyDelta(d StockDelta) error {
	actual := s.Actual.Add(d.Actual)
	reservado := s.Reservado.Add(d.Reservado)
	transito := s.Transito.Add(d.Transito)
	rma := s.RMA.Add(d.RMA)

	switch {
	case actual.IsNegative():
		return &domain.InsufficientStockError{ProductID: s.ProductID, WarehouseID: s.WarehouseID, Counter: CounterActual}
	case reservado.IsNegative():
		return &domain.InsufficientStockError{ProductID: s.ProductID, WarehouseID: s.WarehouseID, Counter: CounterReservado}
	case transito.IsNegative():
		return &domain.InsufficientStockError{ProductID: s.ProductID, WarehouseID: s.WarehouseID, Counter: CounterTransito}
	case rma.IsNegative():
		return &domain.InsufficientStockError{ProductID: s.ProductID, WarehouseID: s.WarehouseID, Counter: CounterRMA}
	}

	s.Actual = actual
	s.Reservado = reservado
	s.Transito = transito
	s.RMA = rma
	return nil
}
