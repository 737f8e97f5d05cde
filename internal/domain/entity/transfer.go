package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado entre bodegas.
const (
	TransferStatusPending   = "PENDING"
	TransferStatusApproved  = "APPROVED"
	TransferStatusInTransit = "IN_TRANSIT"
	TransferStatusReceived  = "RECEIVED"
	TransferStatusCancelled = "CANCELLED"
)

// Transfer representa un traslado de cantidades de productos entre dos
// bodegas distintas. Pertenece al usuario que lo solicita hasta completarse.
type Transfer struct {
	ID              string
	Serial          int64 // consecutivo de despliegue (TR-000123)
	Status          string
	FromWarehouseID string
	ToWarehouseID   string
	RequestedBy     string // UserID dueño del traslado
	ApprovedBy      string // UserID del manager que aprobó (vacío hasta aprobar)
	Items           []TransferItem
	Deleted         bool // borrado lógico, solo en PENDING
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TransferItem línea de un traslado.
type TransferItem struct {
	ID         string
	TransferID string
	ProductID  string
	Quantity   decimal.Decimal
	Note       string
}

// SerialDisplay devuelve el consecutivo con formato de despliegue.
func (t *Transfer) SerialDisplay() string {
	return fmt.Sprintf("TR-%06d", t.Serial)
}

// Editable indica si el traslado admite edición o borrado (solo PENDING).
func (t *Transfer) Editable() bool {
	return t.Status == TransferStatusPending && !t.Deleted
}
