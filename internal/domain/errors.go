package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrUserNotFound           = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
	ErrConflict               = errors.New("conflicto con el estado actual")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrInvalidTransition      = errors.New("transición de estado no permitida")
	ErrConcurrentModification = errors.New("modificación concurrente, reintentar")
	ErrCreditLimitExceeded    = errors.New("cupo de crédito excedido")
)

// InsufficientStockError indica qué producto, bodega y contador quedarían en negativo.
// errors.Is(err, ErrInsufficientStock) retorna true.
type InsufficientStockError struct {
	ProductID   string
	WarehouseID string
	Counter     string // actual, reservado, transito, rma
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: producto %s, bodega %s, contador %s quedaría negativo",
		e.ProductID, e.WarehouseID, e.Counter)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InvalidTransitionError indica una transición de estado no permitida.
// errors.Is(err, ErrInvalidTransition) retorna true.
type InvalidTransitionError struct {
	Kind string // vacío para traslados
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("transición no permitida para %s: %s -> %s", e.Kind, e.From, e.To)
	}
	return fmt.Sprintf("transición no permitida: %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }
