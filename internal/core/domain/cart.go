package domain

import (
	"errors"
	"time"
)

var ErrCartItemNotFound = errors.New("cart item not found")
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// CartItem is a single line in a user's cart. A user has at most one line per
// product; adding an existing product merges quantities.
type CartItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image,omitempty"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"createdAt"`
}
