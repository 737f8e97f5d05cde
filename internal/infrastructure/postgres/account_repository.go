package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación de AccountRepository (usable con pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// Create persiste una cuenta de cliente nueva.
func (r *AccountRepo) Create(a *entity.CustomerAccount) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO customer_accounts (id, name, tax_id, email, phone, balance, credit_limit, credit_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Name, a.TaxID, a.Email, a.Phone,
		a.Balance, a.CreditLimit, a.CreditEnabled, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account tax_id already exists: %w", err)
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

const accountColumns = `id, name, COALESCE(tax_id, ''), COALESCE(email, ''), COALESCE(phone, ''), balance, credit_limit, credit_enabled, created_at, updated_at`

func scanAccount(row pgx.Row, a *entity.CustomerAccount) error {
	return row.Scan(
		&a.ID, &a.Name, &a.TaxID, &a.Email, &a.Phone,
		&a.Balance, &a.CreditLimit, &a.CreditEnabled, &a.CreatedAt, &a.UpdatedAt,
	)
}

// GetByID obtiene una cuenta por ID. Retorna nil si no existe.
func (r *AccountRepo) GetByID(id string) (*entity.CustomerAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM customer_accounts WHERE id = $1`
	var a entity.CustomerAccount
	if err := scanAccount(r.q.QueryRow(context.Background(), query, id), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

// GetForUpdate obtiene la cuenta y bloquea la fila (SELECT FOR UPDATE).
// Usar solo dentro de una transacción.
func (r *AccountRepo) GetForUpdate(id string) (*entity.CustomerAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM customer_accounts WHERE id = $1 FOR UPDATE`
	var a entity.CustomerAccount
	if err := scanAccount(r.q.QueryRow(context.Background(), query, id), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account for update: %w", err)
	}
	return &a, nil
}

// UpdateBalance persiste el nuevo balance. Solo el caso de uso del libro lo
// invoca, bajo bloqueo de fila.
func (r *AccountRepo) UpdateBalance(id string, balance decimal.Decimal) error {
	query := `UPDATE customer_accounts SET balance = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, balance)
	if err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}
	return nil
}

// Update actualiza los datos de la cuenta (no toca el balance).
func (r *AccountRepo) Update(a *entity.CustomerAccount) error {
	query := `
		UPDATE customer_accounts
		SET name = $2, tax_id = $3, email = $4, phone = $5, credit_limit = $6, credit_enabled = $7, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Name, a.TaxID, a.Email, a.Phone, a.CreditLimit, a.CreditEnabled,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// List lista cuentas ordenadas por nombre.
func (r *AccountRepo) List(limit, offset int) ([]*entity.CustomerAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM customer_accounts
		ORDER BY name
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.CustomerAccount
	for rows.Next() {
		var a entity.CustomerAccount
		if err := rows.Scan(&a.ID, &a.Name, &a.TaxID, &a.Email, &a.Phone,
			&a.Balance, &a.CreditLimit, &a.CreditEnabled, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
