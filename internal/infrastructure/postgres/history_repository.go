package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo implementación de HistoryRepository (usable con pool o tx).
// Solo-agregado: la tabla no tiene updates ni deletes.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Append agrega una entrada al rastro de auditoría.
func (r *HistoryRepo) Append(e *entity.HistoryEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO history_entries (id, parent_type, parent_id, status, actor_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.ParentType, e.ParentID, e.Status, e.ActorID, e.Note, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// ListByParent lista el historial de un traslado u orden en orden cronológico.
func (r *HistoryRepo) ListByParent(parentType, parentID string) ([]*entity.HistoryEntry, error) {
	query := `
		SELECT id, parent_type, parent_id, status, actor_id, COALESCE(note, ''), created_at
		FROM history_entries
		WHERE parent_type = $1 AND parent_id = $2
		ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, parentType, parentID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	var list []*entity.HistoryEntry
	for rows.Next() {
		var e entity.HistoryEntry
		if err := rows.Scan(&e.ID, &e.ParentType, &e.ParentID, &e.Status, &e.ActorID, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
