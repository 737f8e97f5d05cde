// Package order contiene la máquina de estados de órdenes: subconjunto de
// estados permitido por tipo, grafo de transiciones y tablas de efectos de
// stock (incluido el rollback por cancelación).
package order

import (
	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
)

// transitionsByKind define el grafo de transiciones por tipo de orden.
// Toda orden nace en PENDING.
var transitionsByKind = map[string]map[string][]string{
	entity.OrderKindQuotation: {
		entity.OrderStatusPending:  {entity.OrderStatusApproved, entity.OrderStatusRejected},
		entity.OrderStatusApproved: {},
		entity.OrderStatusRejected: {},
	},
	entity.OrderKindReplenishment: {
		entity.OrderStatusPending:   {entity.OrderStatusApproved, entity.OrderStatusCancelled},
		entity.OrderStatusApproved:  {entity.OrderStatusConfirmed, entity.OrderStatusCancelled},
		entity.OrderStatusConfirmed: {entity.OrderStatusShipped, entity.OrderStatusCancelled},
		entity.OrderStatusShipped:   {entity.OrderStatusReceived, entity.OrderStatusCancelled},
		entity.OrderStatusReceived:  {},
		entity.OrderStatusCancelled: {},
	},
	entity.OrderKindSale: {
		entity.OrderStatusPending:   {entity.OrderStatusApproved, entity.OrderStatusRejected, entity.OrderStatusCancelled},
		entity.OrderStatusApproved:  {entity.OrderStatusConfirmed, entity.OrderStatusCancelled},
		entity.OrderStatusConfirmed: {entity.OrderStatusDelivered, entity.OrderStatusCancelled},
		entity.OrderStatusDelivered: {},
		entity.OrderStatusRejected:  {},
		entity.OrderStatusCancelled: {},
	},
}

func init() {
	// Venta a crédito comparte el grafo de venta.
	transitionsByKind[entity.OrderKindCreditSale] = transitionsByKind[entity.OrderKindSale]
}

// ValidKind indica si el tipo de orden es conocido.
func ValidKind(kind string) bool {
	_, ok := transitionsByKind[kind]
	return ok
}

// AllowedStatus indica si el estado pertenece al subconjunto del tipo.
func AllowedStatus(kind, status string) bool {
	graph, ok := transitionsByKind[kind]
	if !ok {
		return false
	}
	_, ok = graph[status]
	return ok
}

// CanTransition indica si la transición from -> to está permitida para el tipo.
func CanTransition(kind, from, to string) bool {
	graph, ok := transitionsByKind[kind]
	if !ok {
		return false
	}
	for _, s := range graph[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidateTransition retorna InvalidTransitionError si la transición no está
// permitida para el tipo de orden.
func ValidateTransition(kind, from, to string) error {
	if !CanTransition(kind, from, to) {
		return &domain.InvalidTransitionError{Kind: kind, From: from, To: to}
	}
	return nil
}

// saleKind indica si el tipo mueve stock como venta.
func saleKind(kind string) bool {
	return kind == entity.OrderKindSale || kind == entity.OrderKindCreditSale
}

// TransitionDeltas devuelve los cambios de stock de la transición to sobre
// cada línea con bodega asignada. Solo estas transiciones tocan stock; las
// demás son cambios de estado puros. Para cancelación usar RollbackDeltas.
//
//	venta/crédito    -> CONFIRMED: reservado += qty
//	venta/crédito    -> DELIVERED: reservado -= qty, actual -= qty
//	reposición       -> CONFIRMED: transito += qty
//	reposición       -> RECEIVED:  transito -= qty, actual += qty
func TransitionDeltas(o *entity.Order, to string) []entity.StockChange {
	var delta func(it entity.OrderItem) entity.StockDelta
	switch {
	case saleKind(o.Kind) && to == entity.OrderStatusConfirmed:
		delta = func(it entity.OrderItem) entity.StockDelta {
			return entity.StockDelta{Reservado: it.Quantity}
		}
	case saleKind(o.Kind) && to == entity.OrderStatusDelivered:
		delta = func(it entity.OrderItem) entity.StockDelta {
			return entity.StockDelta{Reservado: it.Quantity.Neg(), Actual: it.Quantity.Neg()}
		}
	case o.Kind == entity.OrderKindReplenishment && to == entity.OrderStatusConfirmed:
		delta = func(it entity.OrderItem) entity.StockDelta {
			return entity.StockDelta{Transito: it.Quantity}
		}
	case o.Kind == entity.OrderKindReplenishment && to == entity.OrderStatusReceived:
		delta = func(it entity.OrderItem) entity.StockDelta {
			return entity.StockDelta{Transito: it.Quantity.Neg(), Actual: it.Quantity}
		}
	default:
		return nil
	}
	var changes []entity.StockChange
	for _, it := range o.Items {
		if it.WarehouseID == "" {
			continue
		}
		changes = append(changes, entity.StockChange{
			ProductID:   it.ProductID,
			WarehouseID: it.WarehouseID,
			Delta:       delta(it),
		})
	}
	return changes
}

// RollbackDeltas devuelve los cambios de stock que revierten los efectos de
// la etapa CONFIRMED al cancelar, en función del estado inmediatamente
// anterior a la cancelación. Cancelar una venta confirmada libera lo
// reservado; cancelar una reposición confirmada o despachada libera el
// tránsito. Desde PENDING/APPROVED/REJECTED nada se movió. DELIVERED y
// RECEIVED son terminales: no hay caso de reversa sobre actual.
func RollbackDeltas(previousStatus string, o *entity.Order) []entity.StockChange {
	releasesReserved := saleKind(o.Kind) && previousStatus == entity.OrderStatusConfirmed
	releasesTransit := o.Kind == entity.OrderKindReplenishment &&
		(previousStatus == entity.OrderStatusConfirmed || previousStatus == entity.OrderStatusShipped)
	if !releasesReserved && !releasesTransit {
		return nil
	}
	var changes []entity.StockChange
	for _, it := range o.Items {
		if it.WarehouseID == "" {
			continue
		}
		d := entity.StockDelta{}
		if releasesReserved {
			d.Reservado = it.Quantity.Neg()
		} else {
			d.Transito = it.Quantity.Neg()
		}
		changes = append(changes, entity.StockChange{
			ProductID:   it.ProductID,
			WarehouseID: it.WarehouseID,
			Delta:       d,
		})
	}
	return changes
}
