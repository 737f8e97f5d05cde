package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del libro (movimientos monetarios de la cuenta del cliente).
const (
	LedgerKindInvoice     = "INVOICE"      // factura: suma al balance
	LedgerKindPayment     = "PAYMENT"      // abono: resta al confirmarse
	LedgerKindRefund      = "REFUND"       // reembolso: resta al confirmarse
	LedgerKindCreditNote  = "CREDIT_NOTE"  // nota crédito: resta
	LedgerKindDebitNote   = "DEBIT_NOTE"   // nota débito: suma
	LedgerKindCashAdvance = "CASH_ADVANCE" // anticipo entregado: suma
)

// Estados de confirmación de un abono/reembolso. Solo tienen sentido para
// PAYMENT y REFUND; los demás tipos aplican su efecto al crearse.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusConfirmed = "CONFIRMED"
	PaymentStatusRejected  = "REJECTED"
)

// LedgerEntry representa una transacción monetaria contra la cuenta de un
// cliente. Se crea una vez; PaymentStatus transiciona exactamente una vez
// de PENDING a CONFIRMED o REJECTED. Applied marca si el efecto monetario
// ya fue aplicado al balance (exactamente una vez en toda la vida de la
// transacción).
type LedgerEntry struct {
	ID            string
	Reference     int64 // consecutivo de despliegue (TX-000123)
	AccountID     string
	Kind          string
	Amount        decimal.Decimal // siempre positivo; el signo lo decide el tipo
	BalanceAfter  decimal.Decimal // snapshot del balance tras aplicar el delta
	PaymentStatus string          // PENDING | CONFIRMED | REJECTED, vacío si no aplica
	Applied       bool
	OrderID       string // orden que originó la factura, si aplica
	Note          string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ReferenceDisplay devuelve el consecutivo con formato de despliegue.
func (e *LedgerEntry) ReferenceDisplay() string {
	return fmt.Sprintf("TX-%06d", e.Reference)
}

// DeferredKind indica si el tipo difiere su efecto hasta la confirmación.
func DeferredKind(kind string) bool {
	return kind == LedgerKindPayment || kind == LedgerKindRefund
}

// ValidLedgerKind indica si el tipo de transacción es conocido.
func ValidLedgerKind(kind string) bool {
	switch kind {
	case LedgerKindInvoice, LedgerKindPayment, LedgerKindRefund,
		LedgerKindCreditNote, LedgerKindDebitNote, LedgerKindCashAdvance:
		return true
	}
	return false
}

// BalanceDelta calcula el delta sobre el balance de la cuenta para un tipo
// de transacción y estado de confirmación dados:
//   - PAYMENT/REFUND confirmado  -> -amount
//   - CREDIT_NOTE                -> -amount
//   - INVOICE/DEBIT_NOTE/CASH_ADVANCE -> +amount
//   - PAYMENT/REFUND pendiente   -> 0 (diferido hasta confirmación)
func BalanceDelta(kind, paymentStatus string, amount decimal.Decimal) decimal.Decimal {
	switch kind {
	case LedgerKindPayment, LedgerKindRefund:
		if paymentStatus == PaymentStatusConfirmed {
			return amount.Neg()
		}
		return decimal.Zero
	case LedgerKindCreditNote:
		return amount.Neg()
	default:
		return amount
	}
}
