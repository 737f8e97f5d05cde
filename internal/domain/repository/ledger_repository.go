package repository

import "github.com/jhoicas/distribucion-api/internal/domain/entity"

// LedgerRepository define el puerto de persistencia para transacciones del
// libro de clientes. Las entradas se crean una vez y nunca se borran.
type LedgerRepository interface {
	Create(e *entity.LedgerEntry) error
	GetByID(id string) (*entity.LedgerEntry, error)
	// GetForUpdate bloquea la fila de la transacción (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.LedgerEntry, error)
	// UpdatePaymentStatus transiciona el estado de confirmación con semántica
	// compare-and-swap desde PENDING; marca Applied y BalanceAfter.
	// Retorna false si el estado persistido ya no es fromStatus.
	UpdatePaymentStatus(e *entity.LedgerEntry, fromStatus string) (bool, error)
	ListByAccount(accountID string, limit, offset int) ([]*entity.LedgerEntry, error)
	// NextReference reserva el siguiente consecutivo de despliegue.
	NextReference() (int64, error)
}
