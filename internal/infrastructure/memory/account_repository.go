package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación en memoria de AccountRepository.
type AccountRepo struct {
	store *Store
}

// NewAccountRepository construye el adaptador sobre el store.
func NewAccountRepository(store *Store) *AccountRepo {
	return &AccountRepo{store: store}
}

// Create guarda una cuenta nueva.
func (r *AccountRepo) Create(a *entity.CustomerAccount) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	r.store.accounts[a.ID] = cloneAccount(a)
	return nil
}

// GetByID devuelve la cuenta o nil si no existe.
func (r *AccountRepo) GetByID(id string) (*entity.CustomerAccount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	a, ok := r.store.accounts[id]
	if !ok {
		return nil, nil
	}
	return cloneAccount(a), nil
}

// GetForUpdate devuelve la cuenta. El bloqueo de fila lo da la serialización
// de transacciones del TxRunner.
func (r *AccountRepo) GetForUpdate(id string) (*entity.CustomerAccount, error) {
	return r.GetByID(id)
}

// UpdateBalance persiste el nuevo balance.
func (r *AccountRepo) UpdateBalance(id string, balance decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if a, ok := r.store.accounts[id]; ok {
		a.Balance = balance
		a.UpdatedAt = time.Now()
	}
	return nil
}

// Update actualiza los datos de la cuenta (no toca el balance).
func (r *AccountRepo) Update(a *entity.CustomerAccount) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cur, ok := r.store.accounts[a.ID]
	if !ok {
		return nil
	}
	cur.Name = a.Name
	cur.TaxID = a.TaxID
	cur.Email = a.Email
	cur.Phone = a.Phone
	cur.CreditLimit = a.CreditLimit
	cur.CreditEnabled = a.CreditEnabled
	cur.UpdatedAt = time.Now()
	return nil
}

// List lista cuentas ordenadas por nombre.
func (r *AccountRepo) List(limit, offset int) ([]*entity.CustomerAccount, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.CustomerAccount
	for _, a := range r.store.accounts {
		list = append(list, cloneAccount(a))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}
