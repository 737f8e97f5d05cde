package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordEntryRequest body para POST /api/ledger/transactions.
type RecordEntryRequest struct {
	AccountID string          `json:"account_id" validate:"required,uuid"`
	Kind      string          `json:"kind" validate:"required,oneof=INVOICE PAYMENT REFUND CREDIT_NOTE DEBIT_NOTE CASH_ADVANCE"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	OrderID   string          `json:"order_id" validate:"omitempty,uuid"`
	Note      string          `json:"note" validate:"omitempty,max=500"`
}

// LedgerEntryResponse transacción del libro en respuestas.
type LedgerEntryResponse struct {
	ID            string          `json:"id"`
	Reference     string          `json:"reference"`
	AccountID     string          `json:"account_id"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	PaymentStatus string          `json:"payment_status,omitempty"`
	Applied       bool            `json:"applied"`
	OrderID       string          `json:"order_id,omitempty"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreateAccountRequest body para POST /api/ledger/accounts.
type CreateAccountRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=200"`
	TaxID         string          `json:"tax_id" validate:"omitempty,max=30"`
	Email         string          `json:"email" validate:"omitempty,email"`
	Phone         string          `json:"phone" validate:"omitempty,max=30"`
	CreditLimit   decimal.Decimal `json:"credit_limit"`
	CreditEnabled bool            `json:"credit_enabled"`
}

// AccountResponse cuenta de cliente con balance denormalizado.
type AccountResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TaxID         string          `json:"tax_id,omitempty"`
	Email         string          `json:"email,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	CreditLimit   decimal.Decimal `json:"credit_limit"`
	CreditEnabled bool            `json:"credit_enabled"`
	CreatedAt     time.Time       `json:"created_at"`
}
