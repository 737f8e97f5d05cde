package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera de la orden y sus líneas.
func (r *OrderRepo) Create(o *entity.Order) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	query := `
		INSERT INTO orders (id, serial, kind, status, customer_id, supplier_id, subtotal, discount, tax, grand_total, list_total, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Serial, o.Kind, o.Status,
		nullIfEmpty(o.CustomerID), nullIfEmpty(o.SupplierID),
		o.Subtotal, o.Discount, o.Tax, o.GrandTotal, o.ListTotal,
		o.CreatedBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("order serial already exists: %w", err)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		if err := r.CreateItem(&o.Items[i]); err != nil {
			return err
		}
	}
	return nil
}

const orderColumns = `id, serial, kind, status, COALESCE(customer_id, ''), COALESCE(supplier_id, ''), subtotal, discount, tax, grand_total, list_total, created_by, created_at, updated_at`

func scanOrder(row pgx.Row, o *entity.Order) error {
	return row.Scan(
		&o.ID, &o.Serial, &o.Kind, &o.Status, &o.CustomerID, &o.SupplierID,
		&o.Subtotal, &o.Discount, &o.Tax, &o.GrandTotal, &o.ListTotal,
		&o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
}

// GetByID obtiene una orden con sus líneas. Retorna nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders WHERE id = $1`
	var o entity.Order
	if err := scanOrder(r.q.QueryRow(context.Background(), query, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.listItems(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

// GetForUpdate obtiene la orden y bloquea la fila (SELECT FOR UPDATE).
// Usar solo dentro de una transacción.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders WHERE id = $1
		FOR UPDATE`
	var o entity.Order
	if err := scanOrder(r.q.QueryRow(context.Background(), query, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	items, err := r.listItems(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepo) listItems(orderID string) ([]entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, COALESCE(warehouse_id, ''), quantity, unit_price, line_total, COALESCE(warranty, ''), position
		FROM order_items WHERE order_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var items []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.WarehouseID,
			&it.Quantity, &it.UnitPrice, &it.LineTotal, &it.Warranty, &it.Position); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateStatus actualiza el estado con semántica compare-and-swap: el WHERE
// exige el estado anterior, y RowsAffected distingue la carrera perdida.
func (r *OrderRepo) UpdateStatus(id, fromStatus, toStatus string) (bool, error) {
	query := `
		UPDATE orders SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(context.Background(), query, id, fromStatus, toStatus)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateKind cambia el tipo en sitio (conversión cotización -> venta) sin
// tocar el estado. Compare-and-swap sobre el tipo.
func (r *OrderRepo) UpdateKind(id, fromKind, toKind string) (bool, error) {
	query := `
		UPDATE orders SET kind = $3, updated_at = now()
		WHERE id = $1 AND kind = $2`
	tag, err := r.q.Exec(context.Background(), query, id, fromKind, toKind)
	if err != nil {
		return false, fmt.Errorf("update order kind: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateTotals persiste los campos financieros recalculados.
func (r *OrderRepo) UpdateTotals(o *entity.Order) error {
	query := `
		UPDATE orders
		SET subtotal = $2, discount = $3, tax = $4, grand_total = $5, list_total = $6, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.Subtotal, o.Discount, o.Tax, o.GrandTotal, o.ListTotal,
	)
	if err != nil {
		return fmt.Errorf("update order totals: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la orden.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_items (id, order_id, product_id, warehouse_id, quantity, unit_price, line_total, warranty, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, nullIfEmpty(item.WarehouseID),
		item.Quantity, item.UnitPrice, item.LineTotal, item.Warranty, item.Position,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// UpdateItem actualiza una línea existente en sitio.
func (r *OrderRepo) UpdateItem(item *entity.OrderItem) error {
	query := `
		UPDATE order_items
		SET product_id = $2, warehouse_id = $3, quantity = $4, unit_price = $5, line_total = $6, warranty = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.ProductID, nullIfEmpty(item.WarehouseID),
		item.Quantity, item.UnitPrice, item.LineTotal, item.Warranty,
	)
	if err != nil {
		return fmt.Errorf("update order item: %w", err)
	}
	return nil
}

// DeleteItem elimina una línea de la orden.
func (r *OrderRepo) DeleteItem(itemID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM order_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete order item: %w", err)
	}
	return nil
}

// UpdateItemProduct re-apunta la línea a otro producto (materialización de
// personalizados: del placeholder al producto real).
func (r *OrderRepo) UpdateItemProduct(itemID, productID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE order_items SET product_id = $2 WHERE id = $1`, itemID, productID)
	if err != nil {
		return fmt.Errorf("update order item product: %w", err)
	}
	return nil
}

// List lista órdenes, opcionalmente filtradas por tipo, más recientes primero.
func (r *OrderRepo) List(kind string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1 = '' OR kind = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, kind, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.Serial, &o.Kind, &o.Status, &o.CustomerID, &o.SupplierID,
			&o.Subtotal, &o.Discount, &o.Tax, &o.GrandTotal, &o.ListTotal,
			&o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		items, err := r.listItems(o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return list, nil
}

// NextSerial reserva el siguiente consecutivo de despliegue (secuencia dedicada).
func (r *OrderRepo) NextSerial() (int64, error) {
	var serial int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('order_serial_seq')`).Scan(&serial)
	if err != nil {
		return 0, fmt.Errorf("next order serial: %w", err)
	}
	return serial, nil
}
