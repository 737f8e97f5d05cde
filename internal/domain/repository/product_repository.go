package repository

import "github.com/jhoicas/distribucion-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos.
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(p *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
}
