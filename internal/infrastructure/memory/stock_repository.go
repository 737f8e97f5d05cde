package memory

import (
	"sort"
	"time"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación en memoria de StockRepository.
type StockRepo struct {
	store *Store
}

// NewStockRepository construye el adaptador sobre el store.
func NewStockRepository(store *Store) *StockRepo {
	return &StockRepo{store: store}
}

// Get obtiene los contadores; si el par no existe devuelve un registro en cero.
func (r *StockRepo) Get(productID, warehouseID string) (*entity.StockRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if s, ok := r.store.stocks[stockKey(productID, warehouseID)]; ok {
		return cloneStock(s), nil
	}
	return entity.NewStockRecord(productID, warehouseID), nil
}

// GetOrCreateForUpdate crea el par en cero si no existe y lo devuelve. El
// bloqueo de fila lo da la serialización de transacciones del TxRunner.
func (r *StockRepo) GetOrCreateForUpdate(productID, warehouseID string) (*entity.StockRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := stockKey(productID, warehouseID)
	if s, ok := r.store.stocks[key]; ok {
		return cloneStock(s), nil
	}
	s := entity.NewStockRecord(productID, warehouseID)
	s.UpdatedAt = time.Now()
	r.store.stocks[key] = s
	return cloneStock(s), nil
}

// Upsert guarda los contadores del par.
func (r *StockRepo) Upsert(record *entity.StockRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	c := cloneStock(record)
	c.UpdatedAt = time.Now()
	r.store.stocks[stockKey(record.ProductID, record.WarehouseID)] = c
	return nil
}

// ListByWarehouse lista los registros de una bodega ordenados por producto.
func (r *StockRepo) ListByWarehouse(warehouseID string) ([]*entity.StockRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.StockRecord
	for _, s := range r.store.stocks {
		if s.WarehouseID == warehouseID {
			list = append(list, cloneStock(s))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ProductID < list[j].ProductID })
	return list, nil
}
