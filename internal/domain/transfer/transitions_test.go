package transfer_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/transfer"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// buildTransfer crea un traslado A -> B con una sola línea de qty unidades.
func buildTransfer(qty string) *entity.Transfer {
	return &entity.Transfer{
		ID:              "t1",
		Status:          entity.TransferStatusPending,
		FromWarehouseID: "wA",
		ToWarehouseID:   "wB",
		Items: []entity.TransferItem{
			{ID: "i1", TransferID: "t1", ProductID: "p1", Quantity: d(qty)},
		},
	}
}

// applyChanges aplica una lista de cambios sobre registros en memoria,
// creándolos en cero si no existen (igual que hace la capa de persistencia).
func applyChanges(t *testing.T, stocks map[string]*entity.StockRecord, changes []entity.StockChange) {
	t.Helper()
	for _, ch := range changes {
		key := ch.ProductID + "|" + ch.WarehouseID
		rec, ok := stocks[key]
		if !ok {
			rec = entity.NewStockRecord(ch.ProductID, ch.WarehouseID)
			stocks[key] = rec
		}
		require.NoError(t, rec.ApplyDelta(ch.Delta))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Grafo de transiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition_Grafo(t *testing.T) {
	allowed := []struct{ from, to string }{
		{entity.TransferStatusPending, entity.TransferStatusApproved},
		{entity.TransferStatusPending, entity.TransferStatusCancelled},
		{entity.TransferStatusApproved, entity.TransferStatusInTransit},
		{entity.TransferStatusApproved, entity.TransferStatusCancelled},
		{entity.TransferStatusInTransit, entity.TransferStatusReceived},
		{entity.TransferStatusInTransit, entity.TransferStatusCancelled},
	}
	for _, tr := range allowed {
		assert.True(t, transfer.CanTransition(tr.from, tr.to), "%s -> %s debe estar permitida", tr.from, tr.to)
	}

	forbidden := []struct{ from, to string }{
		{entity.TransferStatusPending, entity.TransferStatusInTransit}, // no se puede saltar la aprobación
		{entity.TransferStatusPending, entity.TransferStatusReceived},
		{entity.TransferStatusApproved, entity.TransferStatusReceived},
		{entity.TransferStatusApproved, entity.TransferStatusPending}, // sin retrocesos
		{entity.TransferStatusReceived, entity.TransferStatusCancelled}, // terminal
		{entity.TransferStatusCancelled, entity.TransferStatusPending},  // terminal
		{entity.TransferStatusCancelled, entity.TransferStatusApproved},
	}
	for _, tr := range forbidden {
		assert.False(t, transfer.CanTransition(tr.from, tr.to), "%s -> %s debe estar prohibida", tr.from, tr.to)
	}
}

func TestValidateTransition_ErrorTipado(t *testing.T) {
	err := transfer.ValidateTransition(entity.TransferStatusReceived, entity.TransferStatusCancelled)
	require.Error(t, err)

	var invalid *domain.InvalidTransitionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, entity.TransferStatusReceived, invalid.From)
	assert.Equal(t, entity.TransferStatusCancelled, invalid.To)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))

	assert.NoError(t, transfer.ValidateTransition(entity.TransferStatusPending, entity.TransferStatusApproved))
}

// ──────────────────────────────────────────────────────────────────────────────
// Deltas por transición
// ──────────────────────────────────────────────────────────────────────────────

// PENDING -> APPROVED es compuerta de verificación: no mueve stock.
func TestTransitionDeltas_AprobarNoMueveStock(t *testing.T) {
	tr := buildTransfer("4")
	changes := transfer.TransitionDeltas(tr, entity.TransferStatusPending, entity.TransferStatusApproved)
	assert.Empty(t, changes)
}

func TestTransitionDeltas_Despacho(t *testing.T) {
	tr := buildTransfer("4")
	changes := transfer.TransitionDeltas(tr, entity.TransferStatusApproved, entity.TransferStatusInTransit)
	require.Len(t, changes, 2)

	// Origen: actual -> reservado.
	assert.Equal(t, "wA", changes[0].WarehouseID)
	assert.True(t, changes[0].Delta.Actual.Equal(d("-4")))
	assert.True(t, changes[0].Delta.Reservado.Equal(d("4")))

	// Destino: entra en tránsito.
	assert.Equal(t, "wB", changes[1].WarehouseID)
	assert.True(t, changes[1].Delta.Transito.Equal(d("4")))
	assert.True(t, changes[1].Delta.Actual.IsZero())
}

func TestTransitionDeltas_Recepcion(t *testing.T) {
	tr := buildTransfer("4")
	changes := transfer.TransitionDeltas(tr, entity.TransferStatusInTransit, entity.TransferStatusReceived)
	require.Len(t, changes, 2)

	// Origen libera lo reservado.
	assert.Equal(t, "wA", changes[0].WarehouseID)
	assert.True(t, changes[0].Delta.Reservado.Equal(d("-4")))
	assert.True(t, changes[0].Delta.Actual.IsZero())

	// Destino: tránsito -> actual.
	assert.Equal(t, "wB", changes[1].WarehouseID)
	assert.True(t, changes[1].Delta.Actual.Equal(d("4")))
	assert.True(t, changes[1].Delta.Transito.Equal(d("-4")))
}

// Ciclo completo: bodega A parte con actual=10, traslado de 4 hacia B.
// Al recibir, A queda con 6 y B con 4; el total del sistema se conserva en
// cada paso intermedio.
func TestTransitionDeltas_CicloCompletoConservaTotales(t *testing.T) {
	tr := buildTransfer("4")
	stocks := map[string]*entity.StockRecord{
		"p1|wA": {ProductID: "p1", WarehouseID: "wA", Actual: d("10")},
	}

	totalFisico := func() decimal.Decimal {
		// Suma actual + reservado + transito en todas las bodegas: el
		// despacho mueve actual -> reservado en el origen y duplica la
		// cantidad como tránsito en el destino.
		sum := decimal.Zero
		for _, s := range stocks {
			sum = sum.Add(s.Actual).Add(s.Reservado).Add(s.Transito)
		}
		return sum
	}

	// APPROVED -> IN_TRANSIT
	applyChanges(t, stocks, transfer.TransitionDeltas(tr, entity.TransferStatusApproved, entity.TransferStatusInTransit))
	a, b := stocks["p1|wA"], stocks["p1|wB"]
	assert.True(t, a.Actual.Equal(d("6")))
	assert.True(t, a.Reservado.Equal(d("4")))
	assert.True(t, b.Transito.Equal(d("4")))
	assert.True(t, totalFisico().Equal(d("14")), "en tránsito las unidades se cuentan en ambos lados")

	// IN_TRANSIT -> RECEIVED
	applyChanges(t, stocks, transfer.TransitionDeltas(tr, entity.TransferStatusInTransit, entity.TransferStatusReceived))
	assert.True(t, a.Actual.Equal(d("6")))
	assert.True(t, a.Reservado.IsZero())
	assert.True(t, b.Actual.Equal(d("4")))
	assert.True(t, b.Transito.IsZero())
	assert.True(t, totalFisico().Equal(d("10")), "al recibir el total vuelve a las 10 unidades originales")
}

// ──────────────────────────────────────────────────────────────────────────────
// Rollback por cancelación
// ──────────────────────────────────────────────────────────────────────────────

// El rollback es función del estado previo a la cancelación; desde PENDING y
// APPROVED nada se movió.
func TestRollbackDeltas_SinEfectosPrevios(t *testing.T) {
	tr := buildTransfer("4")
	assert.Nil(t, transfer.RollbackDeltas(entity.TransferStatusPending, tr))
	assert.Nil(t, transfer.RollbackDeltas(entity.TransferStatusApproved, tr))
}

func TestRollbackDeltas_DesdeInTransit(t *testing.T) {
	tr := buildTransfer("4")
	stocks := map[string]*entity.StockRecord{
		"p1|wA": {ProductID: "p1", WarehouseID: "wA", Actual: d("10")},
	}
	applyChanges(t, stocks, transfer.TransitionDeltas(tr, entity.TransferStatusApproved, entity.TransferStatusInTransit))
	applyChanges(t, stocks, transfer.RollbackDeltas(entity.TransferStatusInTransit, tr))

	a, b := stocks["p1|wA"], stocks["p1|wB"]
	assert.True(t, a.Actual.Equal(d("10")), "el origen recupera sus unidades")
	assert.True(t, a.Reservado.IsZero())
	assert.True(t, b.Transito.IsZero(), "el destino libera el tránsito")
	assert.True(t, b.Actual.IsZero())
}

// El mapeo es exhaustivo: aunque el grafo no permite cancelar un RECEIVED, la
// tabla de rollback lo define (origen recupera actual, destino lo entrega).
func TestRollbackDeltas_DesdeReceived(t *testing.T) {
	tr := buildTransfer("4")
	changes := transfer.RollbackDeltas(entity.TransferStatusReceived, tr)
	require.Len(t, changes, 2)

	assert.Equal(t, "wA", changes[0].WarehouseID)
	assert.True(t, changes[0].Delta.Actual.Equal(d("4")))
	assert.True(t, changes[0].Delta.Reservado.IsZero(), "lo reservado ya se liberó al recibir")

	assert.Equal(t, "wB", changes[1].WarehouseID)
	assert.True(t, changes[1].Delta.Actual.Equal(d("-4")))
	assert.True(t, changes[1].Delta.Transito.IsZero())
}

func TestTransfer_SerialDisplayYEditable(t *testing.T) {
	tr := &entity.Transfer{Serial: 7, Status: entity.TransferStatusPending}
	assert.Equal(t, "TR-000007", tr.SerialDisplay())
	assert.True(t, tr.Editable())

	tr.Status = entity.TransferStatusApproved
	assert.False(t, tr.Editable(), "solo PENDING admite edición")

	tr.Status = entity.TransferStatusPending
	tr.Deleted = true
	assert.False(t, tr.Editable(), "un borrado lógico no es editable")
}
