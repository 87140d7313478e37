package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modavn/storefront-api/internal/core/domain"
	"github.com/modavn/storefront-api/internal/core/ports"
)

var _ ports.NotificationRepository = (*NotificationRepository)(nil)

// NotificationRepository persists per-user notification preferences.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) Find(ctx context.Context, userID int64) (*domain.NotificationSettings, error) {
	const query = `
		SELECT user_id, email_notifications, desktop_notifications, product_updates, weekly_digest, important_updates
		FROM notification_settings WHERE user_id = $1;`

	var s domain.NotificationSettings
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&s.UserID, &s.Email, &s.Desktop,
		&s.ProductUpdates, &s.WeeklyDigest, &s.ImportantUpdates)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *NotificationRepository) Upsert(ctx context.Context, settings *domain.NotificationSettings) error {
	const query = `
		INSERT INTO notification_settings
			(user_id, email_notifications, desktop_notifications, product_updates, weekly_digest, important_updates)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			email_notifications = EXCLUDED.email_notifications,
			desktop_notifications = EXCLUDED.desktop_notifications,
			product_updates = EXCLUDED.product_updates,
			weekly_digest = EXCLUDED.weekly_digest,
			important_updates = EXCLUDED.important_updates;`

	_, err := r.pool.Exec(ctx, query,
		settings.UserID, settings.Email, settings.Desktop,
		settings.ProductUpdates, settings.WeeklyDigest, settings.ImportantUpdates)
	return err
}
