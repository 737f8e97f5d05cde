package repository

import "github.com/jhoicas/distribucion-api/internal/domain/entity"

// HistoryRepository define el puerto del rastro de auditoría. Solo-agregado:
// Append dentro de la misma transacción de la transición; nunca update ni delete.
type HistoryRepository interface {
	Append(e *entity.HistoryEntry) error
	ListByParent(parentType, parentID string) ([]*entity.HistoryEntry, error)
}
