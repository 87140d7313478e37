package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/modavn/storefront-api/internal/api/metrics"
	"github.com/modavn/storefront-api/internal/core/domain"
	"github.com/modavn/storefront-api/internal/core/ports"
)

// OrderService implements order placement and admin status management.
type OrderService struct {
	orders   ports.OrderRepository
	carts    ports.CartRepository
	activity ports.ActivitySink
	logger   zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	carts ports.CartRepository,
	activity ports.ActivitySink,
	logger zerolog.Logger,
) *OrderService {
	if activity == nil {
		activity = ports.NoopActivitySink{}
	}
	return &OrderService{orders: orders, carts: carts, activity: activity, logger: logger}
}

// Create snapshots the submitted items into a pending order and clears the
// caller's cart. The clear runs after the insert succeeds; a failed clear is
// logged but does not fail the placed order.
func (s *OrderService) Create(ctx context.Context, userID int64, items []domain.OrderItem, total float64) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if total < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	order := &domain.Order{
		UserID:    userID,
		Reference: uuid.NewString(),
		Items:     items,
		Total:     total,
		Status:    domain.OrderPending,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.orders.Insert(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to create order")
		return nil, err
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Int64("order_id", created.ID).
			Msg("order placed but cart clear failed")
	}

	metrics.OrdersCreatedTotal.Inc()
	s.logger.Info().Int64("user_id", userID).Int64("order_id", created.ID).
		Str("reference", created.Reference).Msg("order placed")

	return created, nil
}

func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// Get returns the order only when owned by userID; anything else is a 404.
func (s *OrderService) Get(ctx context.Context, userID, orderID int64) (*domain.Order, error) {
	return s.orders.FindByID(ctx, orderID, userID)
}

// UpdateStatus applies an admin-initiated status change. The target value must
// be a known status and a legal transition from the order's current status.
func (s *OrderService) UpdateStatus(ctx context.Context, actorID, orderID int64, status string) error {
	next := domain.OrderStatus(status)
	if !next.Valid() {
		return domain.ErrInvalidStatus
	}

	order, err := s.orders.FindByID(ctx, orderID, 0)
	if err != nil {
		return err
	}

	if !order.Status.CanTransitionTo(next) {
		return domain.ErrInvalidTransition
	}

	if err := s.orders.UpdateStatus(ctx, orderID, next); err != nil {
		return err
	}

	s.activity.Record(domain.ActivityEvent{
		Type:    domain.ActivityOrderStatusSet,
		UserID:  order.UserID,
		ActorID: actorID,
		Metadata: map[string]string{
			"order_id": strconv.FormatInt(orderID, 10),
			"from":     string(order.Status),
			"to":       string(next),
		},
		OccurredAt: time.Now().UTC(),
	})

	return nil
}
