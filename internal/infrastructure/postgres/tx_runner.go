package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/distribucion-api/internal/application/ledger"
	"github.com/jhoicas/distribucion-api/internal/application/orders"
	"github.com/jhoicas/distribucion-api/internal/application/transfers"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ transfers.TxRunner = (*TxRunner)(nil)
var _ orders.TxRunner = (*TxRunner)(nil)
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunTransfer inicia una transacción, ejecuta fn con repos atados a la tx
// y hace Commit o Rollback (transiciones de traslado: stock + estado +
// historial, todo o nada).
func (r *TxRunner) RunTransfer(ctx context.Context, fn func(
	transferRepo repository.TransferRepository,
	stockRepo repository.StockRepository,
	historyRepo repository.HistoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	transferRepo := NewTransferRepository(tx)
	stockRepo := NewStockRepository(tx)
	historyRepo := NewHistoryRepository(tx)

	if err := fn(transferRepo, stockRepo, historyRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrder inicia una transacción con los repos que una transición de orden
// puede necesitar (confirmar una venta emite factura en la misma tx; guardar
// una orden materializa los productos personalizados).
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	stockRepo repository.StockRepository,
	historyRepo repository.HistoryRepository,
	accountRepo repository.AccountRepository,
	ledgerRepo repository.LedgerRepository,
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewOrderRepository(tx)
	stockRepo := NewStockRepository(tx)
	historyRepo := NewHistoryRepository(tx)
	accountRepo := NewAccountRepository(tx)
	ledgerRepo := NewLedgerRepository(tx)
	productRepo := NewProductRepository(tx)

	if err := fn(orderRepo, stockRepo, historyRepo, accountRepo, ledgerRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLedger inicia una transacción con repos de cuentas y libro: la entrada
// y el nuevo balance se persisten de forma atómica.
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	accountRepo repository.AccountRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	accountRepo := NewAccountRepository(tx)
	ledgerRepo := NewLedgerRepository(tx)

	if err := fn(accountRepo, ledgerRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
