// Package stockquery expone consultas de disponibilidad de stock
// (actual + transito - reservado) con caché de lectura opcional.
package stockquery

import (
	"context"

	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

// AvailabilityCache caché de lectura corta para disponibilidad. La
// invalidación la disparan los casos de uso de traslados y órdenes tras el
// commit de cada transición.
type AvailabilityCache interface {
	Get(ctx context.Context, productID, warehouseID string) (*dto.AvailabilityResponse, bool)
	Set(ctx context.Context, v *dto.AvailabilityResponse)
	Invalidate(ctx context.Context, productID, warehouseID string)
}

// UseCase consultas de solo lectura sobre los contadores de stock.
type UseCase struct {
	stockRepo repository.StockRepository
	cache     AvailabilityCache // opcional, puede ser nil
}

// NewUseCase construye el caso de uso de consultas.
func NewUseCase(stockRepo repository.StockRepository, cache AvailabilityCache) *UseCase {
	return &UseCase{stockRepo: stockRepo, cache: cache}
}

// Availability devuelve los contadores y la disponibilidad efectiva del par
// (producto, bodega). Un par nunca tocado reporta todo en cero.
func (uc *UseCase) Availability(ctx context.Context, productID, warehouseID string) (*dto.AvailabilityResponse, error) {
	if productID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if uc.cache != nil {
		if cached, ok := uc.cache.Get(ctx, productID, warehouseID); ok {
			return cached, nil
		}
	}
	record, err := uc.stockRepo.Get(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	resp := &dto.AvailabilityResponse{
		ProductID:   record.ProductID,
		WarehouseID: record.WarehouseID,
		Actual:      record.Actual,
		Reservado:   record.Reservado,
		Transito:    record.Transito,
		RMA:         record.RMA,
		Available:   record.Available(),
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, resp)
	}
	return resp, nil
}

// Levels lista los contadores de todos los productos de una bodega.
func (uc *UseCase) Levels(ctx context.Context, warehouseID string) ([]*dto.AvailabilityResponse, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	records, err := uc.stockRepo.ListByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AvailabilityResponse, 0, len(records))
	for _, r := range records {
		out = append(out, &dto.AvailabilityResponse{
			ProductID:   r.ProductID,
			WarehouseID: r.WarehouseID,
			Actual:      r.Actual,
			Reservado:   r.Reservado,
			Transito:    r.Transito,
			RMA:         r.RMA,
			Available:   r.Available(),
		})
	}
	return out, nil
}
