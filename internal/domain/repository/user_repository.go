package repository

import "github.com/jhoicas/distribucion-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	// ListByRole lista usuarios activos con el rol dado (destinatarios de
	// notificaciones de manager).
	ListByRole(role string) ([]*entity.User, error)
}
