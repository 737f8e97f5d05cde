package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository (usable con pool o tx).
// Las entradas del libro nunca se borran.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create persiste una transacción del libro.
func (r *LedgerRepo) Create(e *entity.LedgerEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ledger_entries (id, reference, account_id, kind, amount, balance_after, payment_status, applied, order_id, note, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.Reference, e.AccountID, e.Kind, e.Amount, e.BalanceAfter,
		nullIfEmpty(e.PaymentStatus), e.Applied, nullIfEmpty(e.OrderID),
		e.Note, e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ledger reference already exists: %w", err)
		}
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

const ledgerColumns = `id, reference, account_id, kind, amount, balance_after, COALESCE(payment_status, ''), applied, COALESCE(order_id, ''), COALESCE(note, ''), created_by, created_at, updated_at`

func scanLedgerEntry(row pgx.Row, e *entity.LedgerEntry) error {
	return row.Scan(
		&e.ID, &e.Reference, &e.AccountID, &e.Kind, &e.Amount, &e.BalanceAfter,
		&e.PaymentStatus, &e.Applied, &e.OrderID, &e.Note,
		&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
}

// GetByID obtiene una transacción por ID. Retorna nil si no existe.
func (r *LedgerRepo) GetByID(id string) (*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE id = $1`
	var e entity.LedgerEntry
	if err := scanLedgerEntry(r.q.QueryRow(context.Background(), query, id), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return &e, nil
}

// GetForUpdate obtiene la transacción y bloquea la fila (SELECT FOR UPDATE).
// Usar solo dentro de una transacción.
func (r *LedgerRepo) GetForUpdate(id string) (*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE id = $1 FOR UPDATE`
	var e entity.LedgerEntry
	if err := scanLedgerEntry(r.q.QueryRow(context.Background(), query, id), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry for update: %w", err)
	}
	return &e, nil
}

// UpdatePaymentStatus transiciona el estado de confirmación con semántica
// compare-and-swap desde fromStatus, persistiendo Applied y BalanceAfter en
// el mismo UPDATE. Retorna false si el estado persistido ya no es fromStatus.
func (r *LedgerRepo) UpdatePaymentStatus(e *entity.LedgerEntry, fromStatus string) (bool, error) {
	query := `
		UPDATE ledger_entries
		SET payment_status = $3, applied = $4, balance_after = $5, updated_at = now()
		WHERE id = $1 AND payment_status = $2`
	tag, err := r.q.Exec(context.Background(), query,
		e.ID, fromStatus, e.PaymentStatus, e.Applied, e.BalanceAfter,
	)
	if err != nil {
		return false, fmt.Errorf("update payment status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByAccount lista las transacciones de una cuenta, más recientes primero.
func (r *LedgerRepo) ListByAccount(accountID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ID, &e.Reference, &e.AccountID, &e.Kind, &e.Amount, &e.BalanceAfter,
			&e.PaymentStatus, &e.Applied, &e.OrderID, &e.Note,
			&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// NextReference reserva el siguiente consecutivo de despliegue (secuencia dedicada).
func (r *LedgerRepo) NextReference() (int64, error) {
	var ref int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('ledger_reference_seq')`).Scan(&ref)
	if err != nil {
		return 0, fmt.Errorf("next ledger reference: %w", err)
	}
	return ref, nil
}
