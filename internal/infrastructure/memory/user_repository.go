package memory

import (
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	store *Store
}

// NewUserRepository construye el adaptador sobre el store.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

// Create guarda un usuario nuevo. Email único.
func (r *UserRepo) Create(u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, cur := range r.store.users {
		if cur.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	r.store.users[u.ID] = cloneUser(u)
	return nil
}

// GetByID devuelve el usuario o nil si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

// FindByEmail devuelve el usuario o nil si no existe.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// ListByRole lista usuarios activos con el rol dado.
func (r *UserRepo) ListByRole(role string) ([]*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.User
	for _, u := range r.store.users {
		if u.Role == role && u.Status == "active" {
			list = append(list, cloneUser(u))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
