package memory

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	store *Store
}

// NewProductRepository construye el adaptador sobre el store.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

// Create guarda un producto nuevo. SKU único.
func (r *ProductRepo) Create(p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, cur := range r.store.products {
		if cur.SKU == p.SKU {
			return fmt.Errorf("sku %s: %w", p.SKU, domain.ErrDuplicate)
		}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	r.store.products[p.ID] = cloneProduct(p)
	return nil
}

// GetByID devuelve el producto o nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

// GetBySKU devuelve el producto o nil si no existe.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, p := range r.store.products {
		if p.SKU == sku {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

// Update actualiza los datos del producto.
func (r *ProductRepo) Update(p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cur, ok := r.store.products[p.ID]
	if !ok {
		return nil
	}
	c := cloneProduct(p)
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = time.Now()
	r.store.products[p.ID] = c
	return nil
}

// List lista productos ordenados por nombre.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.Product
	for _, p := range r.store.products {
		list = append(list, cloneProduct(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}
