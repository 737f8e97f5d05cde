package memory

import (
	"github.com/google/uuid"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo implementación en memoria de HistoryRepository (solo-agregado).
type HistoryRepo struct {
	store *Store
}

// NewHistoryRepository construye el adaptador sobre el store.
func NewHistoryRepository(store *Store) *HistoryRepo {
	return &HistoryRepo{store: store}
}

// Append agrega una entrada al rastro de auditoría.
func (r *HistoryRepo) Append(e *entity.HistoryEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	c := *e
	r.store.history = append(r.store.history, &c)
	return nil
}

// ListByParent lista el historial de un traslado u orden en orden de llegada.
func (r *HistoryRepo) ListByParent(parentType, parentID string) ([]*entity.HistoryEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.HistoryEntry
	for _, e := range r.store.history {
		if e.ParentType == parentType && e.ParentID == parentID {
			c := *e
			list = append(list, &c)
		}
	}
	return list, nil
}
