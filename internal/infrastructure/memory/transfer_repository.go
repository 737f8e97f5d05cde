package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación en memoria de TransferRepository.
type TransferRepo struct {
	store *Store
}

// NewTransferRepository construye el adaptador sobre el store.
func NewTransferRepository(store *Store) *TransferRepo {
	return &TransferRepo{store: store}
}

// Create guarda el traslado con sus líneas.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	for i := range t.Items {
		if t.Items[i].ID == "" {
			t.Items[i].ID = uuid.New().String()
		}
		t.Items[i].TransferID = t.ID
	}
	r.store.transfers[t.ID] = cloneTransfer(t)
	return nil
}

// GetByID devuelve el traslado o nil si no existe o está borrado.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	t, ok := r.store.transfers[id]
	if !ok || t.Deleted {
		return nil, nil
	}
	return cloneTransfer(t), nil
}

// GetForUpdate devuelve el traslado. El bloqueo de fila lo da la
// serialización de transacciones del TxRunner.
func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	return r.GetByID(id)
}

// UpdateStatus actualiza el estado con semántica compare-and-swap.
func (r *TransferRepo) UpdateStatus(id, fromStatus, toStatus, approvedBy string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.transfers[id]
	if !ok || t.Deleted || t.Status != fromStatus {
		return false, nil
	}
	t.Status = toStatus
	if approvedBy != "" {
		t.ApprovedBy = approvedBy
	}
	t.UpdatedAt = time.Now()
	return true, nil
}

// ReplaceItems reemplaza las líneas en bloque.
func (r *TransferRepo) ReplaceItems(transferID string, items []entity.TransferItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.transfers[transferID]
	if !ok {
		return nil
	}
	next := make([]entity.TransferItem, len(items))
	copy(next, items)
	for i := range next {
		if next[i].ID == "" {
			next[i].ID = uuid.New().String()
		}
		next[i].TransferID = transferID
	}
	t.Items = next
	t.UpdatedAt = time.Now()
	return nil
}

// SoftDelete marca el traslado como borrado.
func (r *TransferRepo) SoftDelete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if t, ok := r.store.transfers[id]; ok {
		t.Deleted = true
		t.UpdatedAt = time.Now()
	}
	return nil
}

// List lista traslados no borrados, más recientes primero.
func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.Transfer
	for _, t := range r.store.transfers {
		if !t.Deleted {
			list = append(list, cloneTransfer(t))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

// NextSerial reserva el siguiente consecutivo.
func (r *TransferRepo) NextSerial() (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.transferSerial++
	return r.store.transferSerial, nil
}
