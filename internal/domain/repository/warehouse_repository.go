package repository

import "github.com/jhoicas/distribucion-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para bodegas.
type WarehouseRepository interface {
	Create(w *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	Update(w *entity.Warehouse) error
	List(limit, offset int) ([]*entity.Warehouse, error)
	Delete(id string) error
}
