package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
)

// AccountRepository define el puerto de persistencia para cuentas de cliente.
// El balance se actualiza únicamente desde el caso de uso del libro, bajo
// bloqueo de fila.
type AccountRepository interface {
	Create(a *entity.CustomerAccount) error
	GetByID(id string) (*entity.CustomerAccount, error)
	// GetForUpdate bloquea la fila de la cuenta (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.CustomerAccount, error)
	UpdateBalance(id string, balance decimal.Decimal) error
	Update(a *entity.CustomerAccount) error
	List(limit, offset int) ([]*entity.CustomerAccount, error)
}
