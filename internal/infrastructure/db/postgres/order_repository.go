package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modavn/storefront-api/internal/core/domain"
	"github.com/modavn/storefront-api/internal/core/ports"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository is the pgx-backed order store. Item snapshots are kept as a
// JSONB column so later catalog edits never change past orders.
type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

const orderColumns = `id, user_id, reference, items, total, status, created_at`

func (r *OrderRepository) Insert(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return nil, err
	}

	const query = `
		INSERT INTO orders (user_id, reference, items, total, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + orderColumns + `;`

	row := r.pool.QueryRow(ctx, query, order.UserID, order.Reference, items, order.Total, order.Status)
	return scanOrder(row)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) FindByID(ctx context.Context, id, userID int64) (*domain.Order, error) {
	// userID = 0 skips the ownership filter (admin lookups).
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND ($2 = 0 OR user_id = $2);`
	return scanOrder(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	const query = `UPDATE orders SET status = $2 WHERE id = $1;`
	tag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) DeleteByUser(ctx context.Context, userID int64) error {
	const query = `DELETE FROM orders WHERE user_id = $1;`
	_, err := r.pool.Exec(ctx, query, userID)
	return err
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	var items []byte
	err := row.Scan(&order.ID, &order.UserID, &order.Reference, &items, &order.Total, &order.Status, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, err
	}
	return &order, nil
}
