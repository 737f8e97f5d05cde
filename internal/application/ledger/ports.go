package ledger

import (
	"context"

	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD: la entrada
// del libro y el nuevo balance de la cuenta se persisten de forma atómica.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		accountRepo repository.AccountRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}
