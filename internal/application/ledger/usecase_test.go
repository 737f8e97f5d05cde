package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/application/ledger"
	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/infrastructure/memory"
)

const (
	actorID     = "11111111-1111-1111-1111-111111111111"
	accountID   = "22222222-2222-2222-2222-222222222222"
	unknownUUID = "99999999-9999-9999-9999-999999999999"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

type fixture struct {
	store *memory.Store
	uc    *ledger.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, memory.NewAccountRepository(store).Create(&entity.CustomerAccount{
		ID: accountID, Name: "Distribuciones La 14", Balance: decimal.Zero,
		CreditLimit: d("1000"), CreditEnabled: true, CreatedAt: time.Now(),
	}))
	uc := ledger.NewUseCase(
		memory.NewTxRunner(store),
		memory.NewAccountRepository(store),
		memory.NewLedgerRepository(store),
	)
	return &fixture{store: store, uc: uc}
}

func (f *fixture) balance(t *testing.T) decimal.Decimal {
	t.Helper()
	a, err := memory.NewAccountRepository(f.store).GetByID(accountID)
	require.NoError(t, err)
	require.NotNil(t, a)
	return a.Balance
}

func (f *fixture) record(t *testing.T, kind, amount string) *dto.LedgerEntryResponse {
	t.Helper()
	resp, err := f.uc.Record(context.Background(), actorID, dto.RecordEntryRequest{
		AccountID: accountID,
		Kind:      kind,
		Amount:    d(amount),
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de transacciones
// ──────────────────────────────────────────────────────────────────────────────

// Factura, notas y anticipos aplican su delta al crearse.
func TestRecord_TiposInmediatos(t *testing.T) {
	f := newFixture(t)

	inv := f.record(t, entity.LedgerKindInvoice, "100")
	assert.Equal(t, "TX-000001", inv.Reference)
	assert.True(t, inv.Applied)
	assert.Empty(t, inv.PaymentStatus)
	assert.True(t, inv.BalanceAfter.Equal(d("100")))
	assert.True(t, f.balance(t).Equal(d("100")))

	nd := f.record(t, entity.LedgerKindDebitNote, "20")
	assert.True(t, nd.BalanceAfter.Equal(d("120")))

	nc := f.record(t, entity.LedgerKindCreditNote, "50")
	assert.True(t, nc.BalanceAfter.Equal(d("70")), "la nota crédito resta")
	assert.True(t, f.balance(t).Equal(d("70")))
}

// Abonos y reembolsos nacen PENDING con delta cero.
func TestRecord_AbonoNaceDiferido(t *testing.T) {
	f := newFixture(t)
	f.record(t, entity.LedgerKindInvoice, "100")

	pay := f.record(t, entity.LedgerKindPayment, "100")
	assert.Equal(t, entity.PaymentStatusPending, pay.PaymentStatus)
	assert.False(t, pay.Applied)
	assert.True(t, pay.BalanceAfter.Equal(d("100")), "el balance no se movió aún")
	assert.True(t, f.balance(t).Equal(d("100")))
}

func TestRecord_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.RecordEntryRequest
		want error
	}{
		{"tipo desconocido", dto.RecordEntryRequest{AccountID: accountID, Kind: "WIRE", Amount: d("10")}, domain.ErrInvalidInput},
		{"monto cero", dto.RecordEntryRequest{AccountID: accountID, Kind: entity.LedgerKindInvoice, Amount: decimal.Zero}, domain.ErrInvalidInput},
		{"monto negativo", dto.RecordEntryRequest{AccountID: accountID, Kind: entity.LedgerKindInvoice, Amount: d("-5")}, domain.ErrInvalidInput},
		{"sin cuenta", dto.RecordEntryRequest{Kind: entity.LedgerKindInvoice, Amount: d("10")}, domain.ErrInvalidInput},
		{"cuenta inexistente", dto.RecordEntryRequest{AccountID: unknownUUID, Kind: entity.LedgerKindInvoice, Amount: d("10")}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Record(ctx, actorID, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirmación exactamente-una-vez
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de referencia: factura de 100, abono de 100 pendiente (balance
// sigue en 100), confirmación (balance llega a 0). Un segundo intento de
// confirmación no puede volver a restar.
func TestConfirmPayment_AplicaExactamenteUnaVez(t *testing.T) {
	f := newFixture(t)
	f.record(t, entity.LedgerKindInvoice, "100")
	pay := f.record(t, entity.LedgerKindPayment, "100")
	require.True(t, f.balance(t).Equal(d("100")))

	resp, err := f.uc.ConfirmPayment(context.Background(), actorID, pay.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusConfirmed, resp.PaymentStatus)
	assert.True(t, resp.Applied)
	assert.True(t, resp.BalanceAfter.IsZero())
	assert.True(t, f.balance(t).IsZero())

	// Doble confirmación: conflicto, y el balance no se mueve de nuevo.
	_, err = f.uc.ConfirmPayment(context.Background(), actorID, pay.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, f.balance(t).IsZero())
}

func TestRejectPayment_SinEfectoMonetario(t *testing.T) {
	f := newFixture(t)
	f.record(t, entity.LedgerKindInvoice, "100")
	pay := f.record(t, entity.LedgerKindPayment, "100")

	resp, err := f.uc.RejectPayment(context.Background(), actorID, pay.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusRejected, resp.PaymentStatus)
	assert.False(t, resp.Applied)
	assert.True(t, f.balance(t).Equal(d("100")), "rechazar no toca el balance")

	// Un rechazado no puede confirmarse después.
	_, err = f.uc.ConfirmPayment(context.Background(), actorID, pay.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Confirmar una transacción no diferida (factura) es un conflicto.
func TestConfirmPayment_SoloDiferidos(t *testing.T) {
	f := newFixture(t)
	inv := f.record(t, entity.LedgerKindInvoice, "100")

	_, err := f.uc.ConfirmPayment(context.Background(), actorID, inv.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.ConfirmPayment(context.Background(), actorID, unknownUUID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El delta de la confirmación se calcula contra el balance vigente en ese
// momento, no contra el balance al crear el abono.
func TestConfirmPayment_UsaBalanceVigente(t *testing.T) {
	f := newFixture(t)
	f.record(t, entity.LedgerKindInvoice, "100")
	pay := f.record(t, entity.LedgerKindPayment, "30")
	f.record(t, entity.LedgerKindInvoice, "50") // el balance sube a 150 entre medias

	resp, err := f.uc.ConfirmPayment(context.Background(), actorID, pay.ID)
	require.NoError(t, err)
	assert.True(t, resp.BalanceAfter.Equal(d("120")), "150 - 30 = 120")
	assert.True(t, f.balance(t).Equal(d("120")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuentas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateAccount_NaceEnCero(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.CreateAccount(context.Background(), dto.CreateAccountRequest{
		Name:        "Almacén El Progreso",
		TaxID:       "900123456-7",
		CreditLimit: d("2000"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Balance.IsZero())
	assert.True(t, resp.CreditLimit.Equal(d("2000")))

	_, err = f.uc.CreateAccount(context.Background(), dto.CreateAccountRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CreateAccount(context.Background(), dto.CreateAccountRequest{Name: "X", CreditLimit: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetAccount_BalanceDenormalizado(t *testing.T) {
	f := newFixture(t)
	f.record(t, entity.LedgerKindInvoice, "100")

	resp, err := f.uc.GetAccount(context.Background(), accountID)
	require.NoError(t, err)
	assert.True(t, resp.Balance.Equal(d("100")))

	_, err = f.uc.GetAccount(context.Background(), unknownUUID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListEntries_PorCuenta(t *testing.T) {
	f := newFixture(t)
	f.record(t, entity.LedgerKindInvoice, "100")
	f.record(t, entity.LedgerKindPayment, "40")
	f.record(t, entity.LedgerKindDebitNote, "10")

	entries, err := f.uc.ListEntries(context.Background(), accountID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	page, err := f.uc.ListEntries(context.Background(), accountID, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)
}
