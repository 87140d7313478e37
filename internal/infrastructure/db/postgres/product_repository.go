package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modavn/storefront-api/internal/core/domain"
	"github.com/modavn/storefront-api/internal/core/ports"
)

var _ ports.ProductRepository = (*ProductRepository)(nil)

// ProductRepository is the pgx-backed catalog store.
type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `id, name, description, price, category, image, stock, created_at`

func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id = $1;`
	return scanProduct(r.pool.QueryRow(ctx, query, id))
}

func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var product domain.Product
	err := row.Scan(&product.ID, &product.Name, &product.Description, &product.Price,
		&product.Category, &product.Image, &product.Stock, &product.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}
