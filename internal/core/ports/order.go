package ports

import (
	"context"

	"github.com/modavn/storefront-api/internal/core/domain"
)

// OrderRepository defines order persistence. Items are stored as an immutable
// snapshot; orders are never deleted by the normal flow.
type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
	// FindByID retrieves an order. When userID is non-zero the query is
	// additionally filtered by owner, so other users' orders read as missing.
	FindByID(ctx context.Context, id, userID int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
	// DeleteByUser removes all of a user's orders (admin customer deletion only).
	DeleteByUser(ctx context.Context, userID int64) error
}

// OrderService implements order placement and status management.
type OrderService interface {
	// Create snapshots items into a new pending order and clears the caller's
	// cart: from the user's perspective, cart to order is a move, not a copy.
	Create(ctx context.Context, userID int64, items []domain.OrderItem, total float64) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error)
	Get(ctx context.Context, userID, orderID int64) (*domain.Order, error)
	// UpdateStatus applies an admin status change, enforcing the domain
	// transition table.
	UpdateStatus(ctx context.Context, actorID, orderID int64, status string) error
}
