package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/distribucion-api/internal/application/ledger"
	"github.com/jhoicas/distribucion-api/internal/application/orders"
	"github.com/jhoicas/distribucion-api/internal/application/transfers"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ transfers.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner emula transacciones sobre el store en memoria: toma un snapshot
// antes de ejecutar fn y lo restaura si fn falla. Las transacciones se
// serializan entre sí con un mutex dedicado; las lecturas por fuera de una
// transacción pueden observar estado aún no confirmado (suficiente para
// desarrollo y pruebas).
type TxRunner struct {
	store *Store
	txMu  sync.Mutex
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// RunTransfer ejecuta fn con semántica todo-o-nada sobre el store.
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	transferRepo repository.TransferRepository,
	stockRepo repository.StockRepository,
	historyRepo repository.HistoryRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	snap := r.store.takeSnapshot()
	err := fn(
		NewTransferRepository(r.store),
		NewStockRepository(r.store),
		NewHistoryRepository(r.store),
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// RunOrder ejecuta fn con semántica todo-o-nada sobre el store.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	stockRepo repository.StockRepository,
	historyRepo repository.HistoryRepository,
	accountRepo repository.AccountRepository,
	ledgerRepo repository.LedgerRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	snap := r.store.takeSnapshot()
	err := fn(
		NewOrderRepository(r.store),
		NewStockRepository(r.store),
		NewHistoryRepository(r.store),
		NewAccountRepository(r.store),
		NewLedgerRepository(r.store),
		NewProductRepository(r.store),
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// RunLedger ejecuta fn con semántica todo-o-nada sobre el store.
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	accountRepo repository.AccountRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	snap := r.store.takeSnapshot()
	err := fn(
		NewAccountRepository(r.store),
		NewLedgerRepository(r.store),
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
