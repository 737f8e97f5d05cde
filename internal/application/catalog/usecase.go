// Package catalog casos de uso CRUD de datos de referencia (bodegas y
// productos). Colaboradores del núcleo: los chequeos de existencia de los
// casos de uso de traslados y órdenes leen estos repositorios.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/distribucion-api/internal/application/dto"
	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

// UseCase CRUD de bodegas y productos.
type UseCase struct {
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
}

// NewUseCase construye el caso de uso de catálogo.
func NewUseCase(warehouseRepo repository.WarehouseRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{warehouseRepo: warehouseRepo, productRepo: productRepo}
}

// CreateWarehouse crea una bodega.
func (uc *UseCase) CreateWarehouse(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouseRepo.Create(w); err != nil {
		return nil, err
	}
	return toWarehouseResponse(w), nil
}

// GetWarehouse obtiene una bodega por ID.
func (uc *UseCase) GetWarehouse(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	w, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(w), nil
}

// ListWarehouses lista bodegas con paginación.
func (uc *UseCase) ListWarehouses(ctx context.Context, page dto.PageRequest) ([]*dto.WarehouseResponse, error) {
	page.DefaultPage()
	list, err := uc.warehouseRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		out = append(out, toWarehouseResponse(w))
	}
	return out, nil
}

// CreateProduct crea un producto del catálogo.
func (uc *UseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.productRepo.GetBySKU(in.SKU); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	p := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       in.SKU,
		Name:      in.Name,
		Category:  in.Category,
		Price:     in.Price,
		Cost:      in.Cost,
		Warranty:  in.Warranty,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetProduct obtiene un producto por ID.
func (uc *UseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// ListProducts lista productos con paginación.
func (uc *UseCase) ListProducts(ctx context.Context, page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.productRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{ID: w.ID, Name: w.Name, Address: w.Address, CreatedAt: w.CreatedAt}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Cost:        p.Cost,
		Warranty:    p.Warranty,
		Placeholder: p.Placeholder,
		CreatedAt:   p.CreatedAt,
	}
}
