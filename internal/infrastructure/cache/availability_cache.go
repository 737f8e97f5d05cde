// Package cache implementa la caché de disponibilidad sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/application/orders"
	"github.com/jhoicas/distribucion-api/internal/application/stockquery"
	"github.com/jhoicas/distribucion-api/internal/application/transfers"
)

var _ stockquery.AvailabilityCache = (*AvailabilityCache)(nil)
var _ transfers.AvailabilityInvalidator = (*AvailabilityCache)(nil)
var _ orders.AvailabilityInvalidator = (*AvailabilityCache)(nil)

// AvailabilityCache caché de lectura corta para disponibilidad de stock.
// TTL corto: la invalidación explícita tras cada commit mantiene la caché
// coherente, el TTL solo acota el daño si una invalidación se pierde.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewAvailabilityCache construye la caché sobre el cliente Redis.
func NewAvailabilityCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *AvailabilityCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &AvailabilityCache{rdb: rdb, ttl: ttl, log: log}
}

func availabilityKey(productID, warehouseID string) string {
	return fmt.Sprintf("availability:%s:%s", productID, warehouseID)
}

// Get lee la disponibilidad cacheada. Cualquier falla de Redis se trata
// como cache miss.
func (c *AvailabilityCache) Get(ctx context.Context, productID, warehouseID string) (*dto.AvailabilityResponse, bool) {
	raw, err := c.rdb.Get(ctx, availabilityKey(productID, warehouseID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("fallo leyendo caché de disponibilidad")
		}
		return nil, false
	}
	var resp dto.AvailabilityResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

// Set guarda la disponibilidad con TTL. Mejor esfuerzo.
func (c *AvailabilityCache) Set(ctx context.Context, v *dto.AvailabilityResponse) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, availabilityKey(v.ProductID, v.WarehouseID), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("fallo escribiendo caché de disponibilidad")
	}
}

// Invalidate borra la entrada del par (producto, bodega). Se invoca después
// del commit de toda transición que tocó ese par.
func (c *AvailabilityCache) Invalidate(ctx context.Context, productID, warehouseID string) {
	if err := c.rdb.Del(ctx, availabilityKey(productID, warehouseID)).Err(); err != nil {
		c.log.Warn().Err(err).Msg("fallo invalidando caché de disponibilidad")
	}
}
