package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/modavn/storefront-api/internal/core/domain"
)

type stubOrderRepo struct {
	orders map[int64]*domain.Order
	nextID int64
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[int64]*domain.Order), nextID: 1}
}

func (r *stubOrderRepo) Insert(_ context.Context, order *domain.Order) (*domain.Order, error) {
	stored := *order
	stored.ID = r.nextID
	r.nextID++
	r.orders[stored.ID] = &stored
	return &stored, nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID int64) ([]*domain.Order, error) {
	var out []*domain.Order
	for id := r.nextID - 1; id >= 1; id-- {
		if o, ok := r.orders[id]; ok && o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id, userID int64) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok || (userID != 0 && o.UserID != userID) {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (r *stubOrderRepo) DeleteByUser(_ context.Context, userID int64) error {
	for id, o := range r.orders {
		if o.UserID == userID {
			delete(r.orders, id)
		}
	}
	return nil
}

func TestOrderService_Create_MovesCartToOrder(t *testing.T) {
	orders := newStubOrderRepo()
	carts := newStubCartRepo()
	_ = carts.Insert(context.Background(), 7, 1, 2)
	svc := NewOrderService(orders, carts, nil, zerolog.Nop())

	items := []domain.OrderItem{{ProductID: 1, Name: "Mug", Price: 9.5, Quantity: 2}}
	order, err := svc.Create(context.Background(), 7, items, 19)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if order.Status != domain.OrderPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
	if order.Reference == "" {
		t.Fatalf("expected a reference")
	}
	if len(order.Items) != 1 || order.Items[0].ProductID != 1 {
		t.Fatalf("unexpected snapshot: %+v", order.Items)
	}

	remaining, _ := carts.ListByUser(context.Background(), 7)
	if len(remaining) != 0 {
		t.Fatalf("expected cart cleared after order, got %d lines", len(remaining))
	}
}

func TestOrderService_Create_EmptyCart(t *testing.T) {
	svc := NewOrderService(newStubOrderRepo(), newStubCartRepo(), nil, zerolog.Nop())

	_, err := svc.Create(context.Background(), 7, nil, 0)
	if !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestOrderService_Get_OwnerScoped(t *testing.T) {
	orders := newStubOrderRepo()
	svc := NewOrderService(orders, newStubCartRepo(), nil, zerolog.Nop())

	created, err := svc.Create(context.Background(), 7, []domain.OrderItem{{ProductID: 1, Quantity: 1}}, 5)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.Get(context.Background(), 7, created.ID); err != nil {
		t.Fatalf("owner cannot read own order: %v", err)
	}
	if _, err := svc.Get(context.Background(), 8, created.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for foreign order, got %v", err)
	}
}

func TestOrderService_UpdateStatus_LegalTransition(t *testing.T) {
	orders := newStubOrderRepo()
	svc := NewOrderService(orders, newStubCartRepo(), nil, zerolog.Nop())

	created, _ := svc.Create(context.Background(), 7, []domain.OrderItem{{ProductID: 1, Quantity: 1}}, 5)

	if err := svc.UpdateStatus(context.Background(), 1, created.ID, "processing"); err != nil {
		t.Fatalf("pending->processing should be legal: %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), 1, created.ID, "shipped"); err != nil {
		t.Fatalf("processing->shipped should be legal: %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), 1, created.ID, "delivered"); err != nil {
		t.Fatalf("shipped->delivered should be legal: %v", err)
	}

	order, _ := orders.FindByID(context.Background(), created.ID, 0)
	if order.Status != domain.OrderDelivered {
		t.Fatalf("expected delivered, got %s", order.Status)
	}
}

func TestOrderService_UpdateStatus_IllegalTransition(t *testing.T) {
	orders := newStubOrderRepo()
	svc := NewOrderService(orders, newStubCartRepo(), nil, zerolog.Nop())

	created, _ := svc.Create(context.Background(), 7, []domain.OrderItem{{ProductID: 1, Quantity: 1}}, 5)

	if err := svc.UpdateStatus(context.Background(), 1, created.ID, "delivered"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for pending->delivered, got %v", err)
	}
}

func TestOrderService_UpdateStatus_UnknownStatus(t *testing.T) {
	orders := newStubOrderRepo()
	svc := NewOrderService(orders, newStubCartRepo(), nil, zerolog.Nop())

	created, _ := svc.Create(context.Background(), 7, []domain.OrderItem{{ProductID: 1, Quantity: 1}}, 5)

	if err := svc.UpdateStatus(context.Background(), 1, created.ID, "teleported"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
