package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación en memoria de LedgerRepository.
type LedgerRepo struct {
	store *Store
}

// NewLedgerRepository construye el adaptador sobre el store.
func NewLedgerRepository(store *Store) *LedgerRepo {
	return &LedgerRepo{store: store}
}

// Create guarda una transacción del libro.
func (r *LedgerRepo) Create(e *entity.LedgerEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	r.store.ledger[e.ID] = cloneLedgerEntry(e)
	return nil
}

// GetByID devuelve la transacción o nil si no existe.
func (r *LedgerRepo) GetByID(id string) (*entity.LedgerEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	e, ok := r.store.ledger[id]
	if !ok {
		return nil, nil
	}
	return cloneLedgerEntry(e), nil
}

// GetForUpdate devuelve la transacción. El bloqueo de fila lo da la
// serialización de transacciones del TxRunner.
func (r *LedgerRepo) GetForUpdate(id string) (*entity.LedgerEntry, error) {
	return r.GetByID(id)
}

// UpdatePaymentStatus transiciona el estado de confirmación con semántica
// compare-and-swap desde fromStatus.
func (r *LedgerRepo) UpdatePaymentStatus(e *entity.LedgerEntry, fromStatus string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cur, ok := r.store.ledger[e.ID]
	if !ok || cur.PaymentStatus != fromStatus {
		return false, nil
	}
	cur.PaymentStatus = e.PaymentStatus
	cur.Applied = e.Applied
	cur.BalanceAfter = e.BalanceAfter
	cur.UpdatedAt = time.Now()
	return true, nil
}

// ListByAccount lista las transacciones de una cuenta, más recientes primero.
func (r *LedgerRepo) ListByAccount(accountID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.LedgerEntry
	for _, e := range r.store.ledger {
		if e.AccountID == accountID {
			list = append(list, cloneLedgerEntry(e))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Reference > list[j].Reference })
	return paginate(list, limit, offset), nil
}

// NextReference reserva el siguiente consecutivo.
func (r *LedgerRepo) NextReference() (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.ledgerRef++
	return r.store.ledgerRef, nil
}
