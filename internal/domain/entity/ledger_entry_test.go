package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/distribucion-api/internal/domain/entity"
)

// BalanceDelta decide el signo del movimiento según el tipo de transacción y,
// para abonos/reembolsos, según su estado de confirmación.
func TestBalanceDelta(t *testing.T) {
	amount := decimal.RequireFromString("100")
	cases := []struct {
		name          string
		kind          string
		paymentStatus string
		want          string
	}{
		{"factura suma", entity.LedgerKindInvoice, "", "100"},
		{"nota débito suma", entity.LedgerKindDebitNote, "", "100"},
		{"anticipo suma", entity.LedgerKindCashAdvance, "", "100"},
		{"nota crédito resta", entity.LedgerKindCreditNote, "", "-100"},
		{"abono pendiente no mueve", entity.LedgerKindPayment, entity.PaymentStatusPending, "0"},
		{"abono confirmado resta", entity.LedgerKindPayment, entity.PaymentStatusConfirmed, "-100"},
		{"abono rechazado no mueve", entity.LedgerKindPayment, entity.PaymentStatusRejected, "0"},
		{"reembolso pendiente no mueve", entity.LedgerKindRefund, entity.PaymentStatusPending, "0"},
		{"reembolso confirmado resta", entity.LedgerKindRefund, entity.PaymentStatusConfirmed, "-100"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := entity.BalanceDelta(tc.kind, tc.paymentStatus, amount)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"%s/%s: se esperaba %s, se obtuvo %s", tc.kind, tc.paymentStatus, tc.want, got)
		})
	}
}

func TestDeferredKind(t *testing.T) {
	assert.True(t, entity.DeferredKind(entity.LedgerKindPayment))
	assert.True(t, entity.DeferredKind(entity.LedgerKindRefund))
	assert.False(t, entity.DeferredKind(entity.LedgerKindInvoice))
	assert.False(t, entity.DeferredKind(entity.LedgerKindCreditNote))
	assert.False(t, entity.DeferredKind(entity.LedgerKindDebitNote))
	assert.False(t, entity.DeferredKind(entity.LedgerKindCashAdvance))
}

func TestValidLedgerKind(t *testing.T) {
	for _, kind := range []string{
		entity.LedgerKindInvoice, entity.LedgerKindPayment, entity.LedgerKindRefund,
		entity.LedgerKindCreditNote, entity.LedgerKindDebitNote, entity.LedgerKindCashAdvance,
	} {
		assert.True(t, entity.ValidLedgerKind(kind), kind)
	}
	assert.False(t, entity.ValidLedgerKind("WIRE_TRANSFER"))
	assert.False(t, entity.ValidLedgerKind(""))
}

func TestLedgerEntry_ReferenceDisplay(t *testing.T) {
	e := &entity.LedgerEntry{Reference: 42}
	assert.Equal(t, "TX-000042", e.ReferenceDisplay())
}
