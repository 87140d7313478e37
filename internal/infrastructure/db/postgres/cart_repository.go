package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modavn/storefront-api/internal/core/domain"
	"github.com/modavn/storefront-api/internal/core/ports"
)

var _ ports.CartRepository = (*CartRepository)(nil)

// CartRepository is the pgx-backed cart line store. All queries are scoped by
// owner so one user can never read or mutate another user's lines.
type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

const cartLineQuery = `
	SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.created_at,
	       p.name, p.price, p.image, p.stock
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id`

func (r *CartRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.CartItem, error) {
	const query = cartLineQuery + `
	WHERE ci.user_id = $1
	ORDER BY ci.created_at DESC;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.CartItem, 0)
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *CartRepository) FindLine(ctx context.Context, userID, productID int64) (*domain.CartItem, error) {
	const query = cartLineQuery + `
	WHERE ci.user_id = $1 AND ci.product_id = $2;`
	return scanCartItem(r.pool.QueryRow(ctx, query, userID, productID))
}

func (r *CartRepository) Insert(ctx context.Context, userID, productID int64, quantity int) error {
	const query = `INSERT INTO cart_items (user_id, product_id, quantity) VALUES ($1, $2, $3);`
	_, err := r.pool.Exec(ctx, query, userID, productID, quantity)
	return err
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	const query = `UPDATE cart_items SET quantity = $3 WHERE user_id = $1 AND id = $2;`
	tag, err := r.pool.Exec(ctx, query, userID, itemID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, userID, itemID int64) error {
	const query = `DELETE FROM cart_items WHERE user_id = $1 AND id = $2;`
	tag, err := r.pool.Exec(ctx, query, userID, itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID int64) error {
	const query = `DELETE FROM cart_items WHERE user_id = $1;`
	_, err := r.pool.Exec(ctx, query, userID)
	return err
}

func scanCartItem(row pgx.Row) (*domain.CartItem, error) {
	var item domain.CartItem
	err := row.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt,
		&item.Name, &item.Price, &item.Image, &item.Stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, err
	}
	return &item, nil
}
