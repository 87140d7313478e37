package ports

import (
	"context"

	"github.com/modavn/storefront-api/internal/core/domain"
)

// UserRepository is the credential store contract. Email uniqueness is
// enforced by the store itself (unique index), not by application locking.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// ListByRoles returns users whose role is in roles, oldest first.
	ListByRoles(ctx context.Context, roles ...string) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, name, email string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateAvatar(ctx context.Context, id int64, avatar string) error
	Delete(ctx context.Context, id int64) error
}
