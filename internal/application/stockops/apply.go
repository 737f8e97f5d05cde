// Package stockops aplica listas de cambios de stock bajo bloqueo de fila,
// en orden estable de llaves, dentro de la transacción del caller.
package stockops

import (
	"sort"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

type stockKey struct {
	ProductID   string
	WarehouseID string
}

// Apply agrupa los cambios por (producto, bodega), ordena las llaves de
// forma estable (producto y luego bodega, para evitar deadlocks cruzados
// entre transiciones concurrentes), bloquea cada fila con
// GetOrCreateForUpdate, aplica el delta acumulado y persiste. Si algún
// contador quedara negativo retorna InsufficientStockError y el caller debe
// hacer rollback de toda la transacción.
func Apply(stockRepo repository.StockRepository, changes []entity.StockChange) error {
	grouped := make(map[stockKey]entity.StockDelta, len(changes))
	for _, c := range changes {
		k := stockKey{ProductID: c.ProductID, WarehouseID: c.WarehouseID}
		grouped[k] = grouped[k].Add(c.Delta)
	}
	keys := make([]stockKey, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].ProductID != keys[j].ProductID {
			return keys[i].ProductID < keys[j].ProductID
		}
		return keys[i].WarehouseID < keys[j].WarehouseID
	})

	for _, k := range keys {
		delta := grouped[k]
		if delta.IsZero() {
			continue
		}
		record, err := stockRepo.GetOrCreateForUpdate(k.ProductID, k.WarehouseID)
		if err != nil {
			return err
		}
		if err := record.ApplyDelta(delta); err != nil {
			return err
		}
		if err := stockRepo.Upsert(record); err != nil {
			return err
		}
	}
	return nil
}
