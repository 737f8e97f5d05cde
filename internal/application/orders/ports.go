package orders

import (
	"context"

	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que una transición de orden puede necesitar: orden, stock,
// historial, cuenta de cliente y libro (la confirmación de una venta emite
// la factura en la misma transacción) y productos (materialización de
// personalizados).
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		stockRepo repository.StockRepository,
		historyRepo repository.HistoryRepository,
		accountRepo repository.AccountRepository,
		ledgerRepo repository.LedgerRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// Notifier despacha notificaciones tras el commit, mejor esfuerzo.
type Notifier interface {
	Notify(recipientID, event string, payload map[string]any)
	Email(recipientEmail, subject, body string)
}

// AvailabilityInvalidator invalida la caché de disponibilidad tras el
// commit de una transición que tocó el par (producto, bodega).
type AvailabilityInvalidator interface {
	Invalidate(ctx context.Context, productID, warehouseID string)
}
