package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `product_id, warehouse_id, actual, reservado, transito, rma, updated_at`

func scanStock(row pgx.Row, s *entity.StockRecord) error {
	return row.Scan(
		&s.ProductID, &s.WarehouseID,
		&s.Actual, &s.Reservado, &s.Transito, &s.RMA,
		&s.UpdatedAt,
	)
}

// Get obtiene los contadores de un producto en una bodega. Si la fila no
// existe devuelve un registro en cero (el par se crea perezosamente).
func (r *StockRepo) Get(productID, warehouseID string) (*entity.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE product_id = $1 AND warehouse_id = $2`
	var s entity.StockRecord
	err := scanStock(r.q.QueryRow(context.Background(), query, productID, warehouseID), &s)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.NewStockRecord(productID, warehouseID), nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetOrCreateForUpdate bloquea la fila del par (producto, bodega); si no
// existe la crea en cero primero. El INSERT ... ON CONFLICT DO NOTHING hace
// la creación segura bajo concurrencia; el SELECT FOR UPDATE posterior toma
// el bloqueo. Usar solo dentro de una transacción.
func (r *StockRepo) GetOrCreateForUpdate(productID, warehouseID string) (*entity.StockRecord, error) {
	insert := `
		INSERT INTO stock (product_id, warehouse_id, actual, reservado, transito, rma, updated_at)
		VALUES ($1, $2, 0, 0, 0, 0, now())
		ON CONFLICT (product_id, warehouse_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, productID, warehouseID); err != nil {
		return nil, fmt.Errorf("create stock row: %w", err)
	}

	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var s entity.StockRecord
	if err := scanStock(r.q.QueryRow(context.Background(), query, productID, warehouseID), &s); err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza los contadores (por producto y bodega).
func (r *StockRepo) Upsert(record *entity.StockRecord) error {
	query := `
		INSERT INTO stock (product_id, warehouse_id, actual, reservado, transito, rma, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET actual = EXCLUDED.actual, reservado = EXCLUDED.reservado,
		              transito = EXCLUDED.transito, rma = EXCLUDED.rma, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		record.ProductID, record.WarehouseID,
		record.Actual, record.Reservado, record.Transito, record.RMA,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByWarehouse lista todos los registros de stock de una bodega.
func (r *StockRepo) ListByWarehouse(warehouseID string) ([]*entity.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE warehouse_id = $1
		ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(&s.ProductID, &s.WarehouseID, &s.Actual, &s.Reservado, &s.Transito, &s.RMA, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
