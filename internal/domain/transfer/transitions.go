// Package transfer contiene la máquina de estados de traslados entre
// bodegas: grafo de transiciones permitidas y las tablas de deltas de stock
// (efecto de cada transición y rollback por cancelación).
package transfer

import (
	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
)

// allowedTransitions define las transiciones válidas. La llave es el estado
// actual y el valor los estados alcanzables desde él.
var allowedTransitions = map[string][]string{
	entity.TransferStatusPending: {
		entity.TransferStatusApproved,
		entity.TransferStatusCancelled,
	},
	entity.TransferStatusApproved: {
		entity.TransferStatusInTransit,
		entity.TransferStatusCancelled,
	},
	entity.TransferStatusInTransit: {
		entity.TransferStatusReceived,
		entity.TransferStatusCancelled,
	},
	entity.TransferStatusReceived:  {}, // terminal
	entity.TransferStatusCancelled: {}, // terminal
}

// CanTransition indica si la transición from -> to está permitida.
func CanTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidateTransition retorna InvalidTransitionError si la transición no está permitida.
func ValidateTransition(from, to string) error {
	if !CanTransition(from, to) {
		return &domain.InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// TransitionDeltas devuelve los cambios de stock que produce la transición
// from -> to sobre cada línea del traslado. PENDING -> APPROVED es una
// compuerta de verificación: no muta stock (el caso de uso valida
// disponibilidad aparte). Para cancelación usar RollbackDeltas.
func TransitionDeltas(t *entity.Transfer, from, to string) []entity.StockChange {
	var changes []entity.StockChange
	switch {
	case from == entity.TransferStatusApproved && to == entity.TransferStatusInTransit:
		// Origen: actual -> reservado. Destino: entra en tránsito.
		for _, it := range t.Items {
			changes = append(changes,
				entity.StockChange{
					ProductID:   it.ProductID,
					WarehouseID: t.FromWarehouseID,
					Delta:       entity.StockDelta{Actual: it.Quantity.Neg(), Reservado: it.Quantity},
				},
				entity.StockChange{
					ProductID:   it.ProductID,
					WarehouseID: t.ToWarehouseID,
					Delta:       entity.StockDelta{Transito: it.Quantity},
				},
			)
		}
	case from == entity.TransferStatusInTransit && to == entity.TransferStatusReceived:
		// Origen libera lo reservado. Destino: tránsito -> actual.
		for _, it := range t.Items {
			changes = append(changes,
				entity.StockChange{
					ProductID:   it.ProductID,
					WarehouseID: t.FromWarehouseID,
					Delta:       entity.StockDelta{Reservado: it.Quantity.Neg()},
				},
				entity.StockChange{
					ProductID:   it.ProductID,
					WarehouseID: t.ToWarehouseID,
					Delta:       entity.StockDelta{Actual: it.Quantity, Transito: it.Quantity.Neg()},
				},
			)
		}
	}
	return changes
}

// RollbackDeltas devuelve los cambios de stock que restauran los contadores
// al cancelar un traslado, en función del estado inmediatamente anterior a
// la cancelación (capturado antes de mutar). El mapeo es exhaustivo sobre
// todos los estados, incluido RECEIVED, para que sea verificable como
// función pura aunque el grafo no permita salir de RECEIVED.
//
//	PENDING, APPROVED  -> nada se movió, nada que restaurar
//	IN_TRANSIT         -> origen: actual += qty, reservado -= qty; destino: transito -= qty
//	RECEIVED           -> origen: actual += qty, reservado -= qty; destino: actual -= qty
func RollbackDeltas(previousStatus string, t *entity.Transfer) []entity.StockChange {
	if previousStatus != entity.TransferStatusInTransit && previousStatus != entity.TransferStatusReceived {
		return nil
	}
	var changes []entity.StockChange
	for _, it := range t.Items {
		source := entity.StockDelta{Actual: it.Quantity}
		dest := entity.StockDelta{}
		if previousStatus == entity.TransferStatusInTransit {
			source.Reservado = it.Quantity.Neg()
			dest.Transito = it.Quantity.Neg()
		} else { // RECEIVED: lo reservado ya se liberó al recibir
			dest.Actual = it.Quantity.Neg()
		}
		changes = append(changes,
			entity.StockChange{ProductID: it.ProductID, WarehouseID: t.FromWarehouseID, Delta: source},
			entity.StockChange{ProductID: it.ProductID, WarehouseID: t.ToWarehouseID, Delta: dest},
		)
	}
	return changes
}
