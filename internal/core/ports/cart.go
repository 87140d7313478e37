package ports

import (
	"context"

	"github.com/modavn/storefront-api/internal/core/domain"
)

// Cart is the composed view returned to clients: the user's lines joined with
// product data, plus the derived totals.
type Cart struct {
	Items     []*domain.CartItem `json:"items"`
	Total     float64            `json:"total"`
	ItemCount int                `json:"itemCount"`
}

// CartRepository defines cart line persistence. Every operation is scoped to
// a single owner; a mutation that matches no row owned by userID reports
// domain.ErrCartItemNotFound.
type CartRepository interface {
	// ListByUser returns the user's lines joined with product name/price/image/stock,
	// newest first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.CartItem, error)
	// FindLine returns the user's line for productID, or domain.ErrCartItemNotFound.
	FindLine(ctx context.Context, userID, productID int64) (*domain.CartItem, error)
	Insert(ctx context.Context, userID, productID int64, quantity int) error
	UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) error
	Delete(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

// CartService implements cart operations on top of CartRepository.
type CartService interface {
	Get(ctx context.Context, userID int64) (*Cart, error)
	// Add puts quantity of productID into the cart, merging with an existing
	// line. It reports created=true when a new line was inserted.
	Add(ctx context.Context, userID, productID int64, quantity int) (created bool, err error)
	UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) error
	Remove(ctx context.Context, userID, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}
