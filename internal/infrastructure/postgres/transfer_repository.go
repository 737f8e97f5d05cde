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

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste la cabecera del traslado y sus líneas.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transfers (id, serial, status, from_warehouse_id, to_warehouse_id, requested_by, approved_by, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Serial, t.Status, t.FromWarehouseID, t.ToWarehouseID,
		t.RequestedBy, nullIfEmpty(t.ApprovedBy), t.Deleted, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("transfer serial already exists: %w", err)
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	for i := range t.Items {
		if err := r.insertItem(t.ID, &t.Items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *TransferRepo) insertItem(transferID string, item *entity.TransferItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.TransferID = transferID
	query := `
		INSERT INTO transfer_items (id, transfer_id, product_id, quantity, note)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.TransferID, item.ProductID, item.Quantity, item.Note,
	)
	if err != nil {
		return fmt.Errorf("insert transfer item: %w", err)
	}
	return nil
}

const transferColumns = `id, serial, status, from_warehouse_id, to_warehouse_id, requested_by, COALESCE(approved_by, ''), deleted, created_at, updated_at`

func scanTransfer(row pgx.Row, t *entity.Transfer) error {
	return row.Scan(
		&t.ID, &t.Serial, &t.Status, &t.FromWarehouseID, &t.ToWarehouseID,
		&t.RequestedBy, &t.ApprovedBy, &t.Deleted, &t.CreatedAt, &t.UpdatedAt,
	)
}

// GetByID obtiene un traslado con sus líneas. Retorna nil si no existe o está borrado.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers WHERE id = $1 AND NOT deleted`
	var t entity.Transfer
	if err := scanTransfer(r.q.QueryRow(context.Background(), query, id), &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	items, err := r.listItems(t.ID)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return &t, nil
}

// GetForUpdate obtiene el traslado y bloquea la fila (SELECT FOR UPDATE).
// Usar solo dentro de una transacción.
func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers WHERE id = $1 AND NOT deleted
		FOR UPDATE`
	var t entity.Transfer
	if err := scanTransfer(r.q.QueryRow(context.Background(), query, id), &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer for update: %w", err)
	}
	items, err := r.listItems(t.ID)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return &t, nil
}

func (r *TransferRepo) listItems(transferID string) ([]entity.TransferItem, error) {
	query := `
		SELECT id, transfer_id, product_id, quantity, COALESCE(note, '')
		FROM transfer_items WHERE transfer_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, transferID)
	if err != nil {
		return nil, fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()
	var items []entity.TransferItem
	for rows.Next() {
		var it entity.TransferItem
		if err := rows.Scan(&it.ID, &it.TransferID, &it.ProductID, &it.Quantity, &it.Note); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateStatus actualiza el estado con semántica compare-and-swap: el WHERE
// exige el estado anterior, y RowsAffected distingue la carrera perdida.
func (r *TransferRepo) UpdateStatus(id, fromStatus, toStatus, approvedBy string) (bool, error) {
	query := `
		UPDATE transfers
		SET status = $3, approved_by = COALESCE($4, approved_by), updated_at = now()
		WHERE id = $1 AND status = $2 AND NOT deleted`
	tag, err := r.q.Exec(context.Background(), query, id, fromStatus, toStatus, nullIfEmpty(approvedBy))
	if err != nil {
		return false, fmt.Errorf("update transfer status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ReplaceItems reemplaza las líneas en bloque (solo se invoca en PENDING).
func (r *TransferRepo) ReplaceItems(transferID string, items []entity.TransferItem) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM transfer_items WHERE transfer_id = $1`, transferID); err != nil {
		return fmt.Errorf("delete transfer items: %w", err)
	}
	for i := range items {
		if err := r.insertItem(transferID, &items[i]); err != nil {
			return err
		}
	}
	if _, err := r.q.Exec(context.Background(), `UPDATE transfers SET updated_at = now() WHERE id = $1`, transferID); err != nil {
		return fmt.Errorf("touch transfer: %w", err)
	}
	return nil
}

// SoftDelete marca el traslado como borrado (borrado lógico).
func (r *TransferRepo) SoftDelete(id string) error {
	query := `UPDATE transfers SET deleted = true, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("soft delete transfer: %w", err)
	}
	return nil
}

// List lista traslados no borrados, más recientes primero.
func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers WHERE NOT deleted
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := rows.Scan(&t.ID, &t.Serial, &t.Status, &t.FromWarehouseID, &t.ToWarehouseID,
			&t.RequestedBy, &t.ApprovedBy, &t.Deleted, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range list {
		items, err := r.listItems(t.ID)
		if err != nil {
			return nil, err
		}
		t.Items = items
	}
	return list, nil
}

// NextSerial reserva el siguiente consecutivo de despliegue (secuencia dedicada).
func (r *TransferRepo) NextSerial() (int64, error) {
	var serial int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('transfer_serial_seq')`).Scan(&serial)
	if err != nil {
		return 0, fmt.Errorf("next transfer serial: %w", err)
	}
	return serial, nil
}
