package stockquery_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/application/stockquery"
	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/infrastructure/memory"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// fakeCache caché en memoria para observar hits, sets e invalidaciones.
type fakeCache struct {
	entries map[string]*dto.AvailabilityResponse
	hits    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*dto.AvailabilityResponse)}
}

func (c *fakeCache) key(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

func (c *fakeCache) Get(_ context.Context, productID, warehouseID string) (*dto.AvailabilityResponse, bool) {
	v, ok := c.entries[c.key(productID, warehouseID)]
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *fakeCache) Set(_ context.Context, v *dto.AvailabilityResponse) {
	c.sets++
	c.entries[c.key(v.ProductID, v.WarehouseID)] = v
}

func (c *fakeCache) Invalidate(_ context.Context, productID, warehouseID string) {
	delete(c.entries, c.key(productID, warehouseID))
}

func seedStock(t *testing.T, store *memory.Store, productID, warehouseID string, actual, reservado, transito string) {
	t.Helper()
	require.NoError(t, memory.NewStockRepository(store).Upsert(&entity.StockRecord{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Actual:      d(actual),
		Reservado:   d(reservado),
		Transito:    d(transito),
	}))
}

func TestAvailability_CalculaDisponible(t *testing.T) {
	store := memory.NewStore()
	seedStock(t, store, "p1", "w1", "10", "3", "5")
	uc := stockquery.NewUseCase(memory.NewStockRepository(store), nil)

	resp, err := uc.Availability(context.Background(), "p1", "w1")
	require.NoError(t, err)
	assert.True(t, resp.Actual.Equal(d("10")))
	assert.True(t, resp.Reservado.Equal(d("3")))
	assert.True(t, resp.Transito.Equal(d("5")))
	assert.True(t, resp.Available.Equal(d("12")), "disponible = 10 + 5 - 3")
}

// Un par (producto, bodega) nunca tocado reporta todo en cero, no 404.
func TestAvailability_ParNuncaTocadoReportaCero(t *testing.T) {
	store := memory.NewStore()
	uc := stockquery.NewUseCase(memory.NewStockRepository(store), nil)

	resp, err := uc.Availability(context.Background(), "p1", "w1")
	require.NoError(t, err)
	assert.True(t, resp.Available.IsZero())
	assert.Equal(t, "p1", resp.ProductID)
	assert.Equal(t, "w1", resp.WarehouseID)
}

func TestAvailability_Validaciones(t *testing.T) {
	store := memory.NewStore()
	uc := stockquery.NewUseCase(memory.NewStockRepository(store), nil)

	_, err := uc.Availability(context.Background(), "", "w1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Availability(context.Background(), "p1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La segunda consulta sale del caché; tras invalidar se vuelve al repositorio.
func TestAvailability_UsaCache(t *testing.T) {
	store := memory.NewStore()
	seedStock(t, store, "p1", "w1", "10", "0", "0")
	cache := newFakeCache()
	uc := stockquery.NewUseCase(memory.NewStockRepository(store), cache)
	ctx := context.Background()

	_, err := uc.Availability(ctx, "p1", "w1")
	require.NoError(t, err)
	assert.Equal(t, 0, cache.hits)
	assert.Equal(t, 1, cache.sets)

	_, err = uc.Availability(ctx, "p1", "w1")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits, "la segunda lectura debe ser un hit")
	assert.Equal(t, 1, cache.sets)

	cache.Invalidate(ctx, "p1", "w1")
	_, err = uc.Availability(ctx, "p1", "w1")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, 2, cache.sets, "tras invalidar se repuebla desde el repositorio")
}

func TestLevels_ListaPorBodega(t *testing.T) {
	store := memory.NewStore()
	seedStock(t, store, "p1", "w1", "10", "0", "0")
	seedStock(t, store, "p2", "w1", "4", "1", "0")
	seedStock(t, store, "p1", "w2", "7", "0", "0") // otra bodega, no debe salir
	uc := stockquery.NewUseCase(memory.NewStockRepository(store), nil)

	levels, err := uc.Levels(context.Background(), "w1")
	require.NoError(t, err)
	require.Len(t, levels, 2)
	for _, lv := range levels {
		assert.Equal(t, "w1", lv.WarehouseID)
	}

	_, err = uc.Levels(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
