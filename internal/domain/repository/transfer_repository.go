package repository

import "github.com/jhoicas/distribucion-api/internal/domain/entity"

// TransferRepository define el puerto de persistencia para traslados.
type TransferRepository interface {
	Create(t *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	// GetForUpdate bloquea la fila del traslado (SELECT FOR UPDATE).
	// Usar solo dentro de una transacción.
	GetForUpdate(id string) (*entity.Transfer, error)
	// UpdateStatus actualiza el estado con semántica compare-and-swap:
	// retorna false si el estado persistido ya no es fromStatus.
	UpdateStatus(id, fromStatus, toStatus, approvedBy string) (bool, error)
	// ReplaceItems reemplaza las líneas en bloque (solo traslados PENDING).
	ReplaceItems(transferID string, items []entity.TransferItem) error
	// SoftDelete marca el traslado como borrado (solo PENDING).
	SoftDelete(id string) error
	List(limit, offset int) ([]*entity.Transfer, error)
	// NextSerial reserva el siguiente consecutivo de despliegue.
	NextSerial() (int64, error)
}
