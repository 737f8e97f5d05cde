package repository

import "github.com/jhoicas/distribucion-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar los contadores
// de stock por (producto, bodega). Las mutaciones solo ocurren dentro de
// transacciones bajo GetOrCreateForUpdate.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.StockRecord, error)
	// GetOrCreateForUpdate bloquea la fila (SELECT FOR UPDATE); si no existe
	// la crea en cero y la bloquea. Usar solo dentro de una transacción.
	GetOrCreateForUpdate(productID, warehouseID string) (*entity.StockRecord, error)
	Upsert(record *entity.StockRecord) error
	ListByWarehouse(warehouseID string) ([]*entity.StockRecord, error)
}
