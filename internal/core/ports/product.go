package ports

import (
	"context"

	"github.com/modavn/storefront-api/internal/core/domain"
)

// ProductRepository defines catalog persistence operations.
type ProductRepository interface {
	// List returns all products, newest first.
	List(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	// Categories returns the distinct category names, sorted.
	Categories(ctx context.Context) ([]string, error)
}

// ProductService exposes catalog browsing.
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
}
