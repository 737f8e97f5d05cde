package transfers

import (
	"context"

	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para las transiciones
// de traslados (stock + estado + historial, todo o nada).
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		transferRepo repository.TransferRepository,
		stockRepo repository.StockRepository,
		historyRepo repository.HistoryRepository,
	) error) error
}

// Notifier despacha notificaciones fuera de la unidad atómica: se invoca
// solo después del commit y sus fallas se registran, nunca se propagan.
type Notifier interface {
	Notify(recipientID, event string, payload map[string]any)
	Email(recipientEmail, subject, body string)
}

// AvailabilityInvalidator invalida la caché de disponibilidad tras el
// commit de una transición que tocó el par (producto, bodega).
type AvailabilityInvalidator interface {
	Invalidate(ctx context.Context, productID, warehouseID string)
}
