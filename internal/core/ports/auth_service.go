package ports

import (
	"context"

	"github.com/modavn/storefront-api/internal/core/domain"
)

// AuthService covers registration, login and profile lookup. Register and
// Login return a signed bearer token alongside the user record.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
}
