package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/modavn/storefront-api/internal/core/domain"
	"github.com/modavn/storefront-api/internal/core/ports"
)

type stubCartService struct {
	addFn func(ctx context.Context, userID, productID int64, quantity int) (bool, error)
	getFn func(ctx context.Context, userID int64) (*ports.Cart, error)
}

func (s *stubCartService) Get(ctx context.Context, userID int64) (*ports.Cart, error) {
	return s.getFn(ctx, userID)
}

func (s *stubCartService) Add(ctx context.Context, userID, productID int64, quantity int) (bool, error) {
	return s.addFn(ctx, userID, productID, quantity)
}

func (s *stubCartService) UpdateQuantity(context.Context, int64, int64, int) error { return nil }
func (s *stubCartService) Remove(context.Context, int64, int64) error              { return nil }
func (s *stubCartService) Clear(context.Context, int64) error                      { return nil }

func TestCartHandler_Add_NewLine(t *testing.T) {
	stub := &stubCartService{
		addFn: func(_ context.Context, userID, productID int64, quantity int) (bool, error) {
			if userID != 7 || productID != 1 || quantity != 2 {
				t.Fatalf("unexpected args: %d %d %d", userID, productID, quantity)
			}
			return true, nil
		},
	}
	handler := NewCartHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/cart/add", `{"productId":1,"quantity":2}`)
	c.Set("user_id", int64(7))

	if err := handler.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for a new line, got %d", rec.Code)
	}
}

func TestCartHandler_Add_Merged(t *testing.T) {
	stub := &stubCartService{
		addFn: func(context.Context, int64, int64, int) (bool, error) {
			return false, nil
		},
	}
	handler := NewCartHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/cart/add", `{"productId":1,"quantity":2}`)
	c.Set("user_id", int64(7))

	if err := handler.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a merge, got %d", rec.Code)
	}
}

func TestCartHandler_Add_UnknownProduct(t *testing.T) {
	stub := &stubCartService{
		addFn: func(context.Context, int64, int64, int) (bool, error) {
			return false, domain.ErrProductNotFound
		},
	}
	handler := NewCartHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/cart/add", `{"productId":42,"quantity":1}`)
	c.Set("user_id", int64(7))

	err := handler.Add(c)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound to propagate, got %v", err)
	}
}

func TestCartHandler_Add_InvalidBody(t *testing.T) {
	handler := NewCartHandler(&stubCartService{})

	c, _ := newTestContext(t, http.MethodPost, "/cart/add", `{"productId":1,"quantity":0}`)
	c.Set("user_id", int64(7))

	err := handler.Add(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero quantity, got %v", err)
	}
}

func TestCartHandler_Get(t *testing.T) {
	stub := &stubCartService{
		getFn: func(_ context.Context, userID int64) (*ports.Cart, error) {
			return &ports.Cart{
				Items:     []*domain.CartItem{{ID: 1, ProductID: 1, Quantity: 2, Price: 9.5}},
				Total:     19,
				ItemCount: 1,
			}, nil
		},
	}
	handler := NewCartHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/cart", "")
	c.Set("user_id", int64(7))

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCartHandler_RequiresAuth(t *testing.T) {
	handler := NewCartHandler(&stubCartService{})

	c, _ := newTestContext(t, http.MethodGet, "/cart", "")

	err := handler.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %v", err)
	}
}
