package entity_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// ──────────────────────────────────────────────────────────────────────────────
// Available = actual + transito - reservado
// ──────────────────────────────────────────────────────────────────────────────

func TestStockRecord_Available(t *testing.T) {
	s := &entity.StockRecord{
		Actual:    d("10"),
		Reservado: d("3"),
		Transito:  d("5"),
		RMA:       d("99"), // el RMA nunca cuenta como disponible
	}
	assert.True(t, s.Available().Equal(d("12")),
		"disponible = 10 + 5 - 3 = 12, se obtuvo %s", s.Available())
}

func TestNewStockRecord_NaceEnCero(t *testing.T) {
	s := entity.NewStockRecord("p1", "w1")
	assert.Equal(t, "p1", s.ProductID)
	assert.Equal(t, "w1", s.WarehouseID)
	assert.True(t, s.Actual.IsZero())
	assert.True(t, s.Reservado.IsZero())
	assert.True(t, s.Transito.IsZero())
	assert.True(t, s.RMA.IsZero())
	assert.True(t, s.Available().IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyDelta: invariante de no-negatividad por contador
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyDelta_AplicaTodosLosContadores(t *testing.T) {
	s := &entity.StockRecord{Actual: d("10"), Reservado: d("2"), Transito: d("1"), RMA: d("0")}
	err := s.ApplyDelta(entity.StockDelta{
		Actual:    d("-4"),
		Reservado: d("4"),
		Transito:  d("-1"),
		RMA:       d("0.5"),
	})
	require.NoError(t, err)
	assert.True(t, s.Actual.Equal(d("6")))
	assert.True(t, s.Reservado.Equal(d("6")))
	assert.True(t, s.Transito.IsZero())
	assert.True(t, s.RMA.Equal(d("0.5")))
}

// Cada contador que quedaría negativo debe rechazar el delta completo, sin
// mutar ningún otro contador, y nombrar el contador ofensor.
func TestApplyDelta_RechazaNegativosPorContador(t *testing.T) {
	cases := []struct {
		name    string
		delta   entity.StockDelta
		counter string
	}{
		{"actual insuficiente", entity.StockDelta{Actual: d("-11")}, entity.CounterActual},
		{"reservado insuficiente", entity.StockDelta{Reservado: d("-3")}, entity.CounterReservado},
		{"transito insuficiente", entity.StockDelta{Transito: d("-2")}, entity.CounterTransito},
		{"rma insuficiente", entity.StockDelta{RMA: d("-1")}, entity.CounterRMA},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &entity.StockRecord{
				ProductID:   "p1",
				WarehouseID: "w1",
				Actual:      d("10"),
				Reservado:   d("2"),
				Transito:    d("1"),
			}
			err := s.ApplyDelta(tc.delta)
			require.Error(t, err)

			var insufficient *domain.InsufficientStockError
			require.True(t, errors.As(err, &insufficient),
				"el error debe ser InsufficientStockError")
			assert.Equal(t, tc.counter, insufficient.Counter)
			assert.Equal(t, "p1", insufficient.ProductID)
			assert.Equal(t, "w1", insufficient.WarehouseID)
			assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

			// Nada se mutó.
			assert.True(t, s.Actual.Equal(d("10")))
			assert.True(t, s.Reservado.Equal(d("2")))
			assert.True(t, s.Transito.Equal(d("1")))
			assert.True(t, s.RMA.IsZero())
		})
	}
}

// Cantidades fraccionarias (kg, litros) son válidas mientras no haya negativos.
func TestApplyDelta_AdmiteFracciones(t *testing.T) {
	s := &entity.StockRecord{Actual: d("2.5")}
	require.NoError(t, s.ApplyDelta(entity.StockDelta{Actual: d("-2.5")}))
	assert.True(t, s.Actual.IsZero(), "llegar exactamente a cero es válido")
}

// ──────────────────────────────────────────────────────────────────────────────
// StockDelta
// ──────────────────────────────────────────────────────────────────────────────

func TestStockDelta_AddYIsZero(t *testing.T) {
	a := entity.StockDelta{Actual: d("3"), Reservado: d("-3")}
	b := entity.StockDelta{Actual: d("-3"), Reservado: d("3")}
	assert.True(t, a.Add(b).IsZero(), "deltas opuestos deben anularse")
	assert.False(t, a.IsZero())
	assert.True(t, entity.StockDelta{}.IsZero())
}
