package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación en memoria de WarehouseRepository.
type WarehouseRepo struct {
	store *Store
}

// NewWarehouseRepository construye el adaptador sobre el store.
func NewWarehouseRepository(store *Store) *WarehouseRepo {
	return &WarehouseRepo{store: store}
}

// Create guarda una bodega nueva.
func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	r.store.warehouses[w.ID] = cloneWarehouse(w)
	return nil
}

// GetByID devuelve la bodega o nil si no existe.
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	w, ok := r.store.warehouses[id]
	if !ok {
		return nil, nil
	}
	return cloneWarehouse(w), nil
}

// Update actualiza los datos de la bodega.
func (r *WarehouseRepo) Update(w *entity.Warehouse) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cur, ok := r.store.warehouses[w.ID]
	if !ok {
		return nil
	}
	cur.Name = w.Name
	cur.Address = w.Address
	cur.UpdatedAt = time.Now()
	return nil
}

// List lista bodegas ordenadas por nombre.
func (r *WarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.Warehouse
	for _, w := range r.store.warehouses {
		list = append(list, cloneWarehouse(w))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}

// Delete elimina la bodega.
func (r *WarehouseRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.warehouses, id)
	return nil
}
