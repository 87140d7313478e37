package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/modavn/storefront-api/internal/core/domain"
	"github.com/modavn/storefront-api/internal/core/ports"
)

// CartService implements cart operations. Every call is scoped to the owner
// carried in the verified token; cross-user rows simply read as missing.
type CartService struct {
	carts    ports.CartRepository
	products ports.ProductRepository
	logger   zerolog.Logger
}

func NewCartService(carts ports.CartRepository, products ports.ProductRepository, logger zerolog.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

// Get returns the cart with totals. An empty cart is a valid, zero-total cart.
func (s *CartService) Get(ctx context.Context, userID int64) (*ports.Cart, error) {
	items, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := &ports.Cart{Items: items, ItemCount: len(items)}
	if cart.Items == nil {
		cart.Items = []*domain.CartItem{}
	}
	for _, item := range items {
		cart.Total += item.Price * float64(item.Quantity)
	}
	return cart, nil
}

// Add inserts a new line or merges quantity into an existing one.
func (s *CartService) Add(ctx context.Context, userID, productID int64, quantity int) (bool, error) {
	if quantity < 1 {
		return false, domain.ErrInvalidQuantity
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return false, err
	}

	line, err := s.carts.FindLine(ctx, userID, productID)
	switch {
	case err == nil:
		return false, s.carts.UpdateQuantity(ctx, userID, line.ID, line.Quantity+quantity)
	case errors.Is(err, domain.ErrCartItemNotFound):
		return true, s.carts.Insert(ctx, userID, productID, quantity)
	default:
		return false, err
	}
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}
	return s.carts.UpdateQuantity(ctx, userID, itemID, quantity)
}

func (s *CartService) Remove(ctx context.Context, userID, itemID int64) error {
	return s.carts.Delete(ctx, userID, itemID)
}

func (s *CartService) Clear(ctx context.Context, userID int64) error {
	return s.carts.Clear(ctx, userID)
}
