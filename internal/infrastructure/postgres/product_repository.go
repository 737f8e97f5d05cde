package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/distribucion-api/internal/domain"
	"github.com/jhoicas/distribucion-api/internal/domain/entity"
	"github.com/jhoicas/distribucion-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo. SKU único.
func (r *ProductRepo) Create(p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (id, sku, name, category, description, price, cost, warranty, placeholder, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.SKU, p.Name, p.Category, p.Description,
		p.Price, p.Cost, p.Warranty, p.Placeholder, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sku %s: %w", p.SKU, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

const productColumns = `id, sku, name, COALESCE(category, ''), COALESCE(description, ''), price, cost, COALESCE(warranty, ''), placeholder, created_at, updated_at`

func scanProduct(row pgx.Row, p *entity.Product) error {
	return row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Category, &p.Description,
		&p.Price, &p.Cost, &p.Warranty, &p.Placeholder, &p.CreatedAt, &p.UpdatedAt,
	)
}

// GetByID obtiene un producto por ID. Retorna nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p entity.Product
	if err := scanProduct(r.q.QueryRow(context.Background(), query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetBySKU obtiene un producto por SKU. Retorna nil si no existe.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	var p entity.Product
	if err := scanProduct(r.q.QueryRow(context.Background(), query, sku), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return &p, nil
}

// Update actualiza los datos del producto.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products
		SET sku = $2, name = $3, category = $4, description = $5, price = $6, cost = $7, warranty = $8, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.SKU, p.Name, p.Category, p.Description, p.Price, p.Cost, p.Warranty,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sku %s: %w", p.SKU, domain.ErrDuplicate)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List lista productos ordenados por nombre.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY name
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Category, &p.Description,
			&p.Price, &p.Cost, &p.Warranty, &p.Placeholder, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
