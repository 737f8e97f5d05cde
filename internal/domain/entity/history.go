package entity

import "time"

// Tipos de agregado al que pertenece una entrada de historial.
const (
	HistoryParentTransfer = "transfer"
	HistoryParentOrder    = "order"
)

// HistoryEntry entrada del rastro de auditoría de un traslado u orden.
// Solo-agregado: se escribe en cada transición y nunca se muta ni borra.
type HistoryEntry struct {
	ID         string
	ParentType string // transfer | order
	ParentID   string
	Status     string
	ActorID    string
	Note       string
	CreatedAt  time.Time
}
