package ports

import (
	"context"

	"github.com/modavn/storefront-api/internal/core/domain"
)

// NotificationRepository persists per-user notification preferences.
type NotificationRepository interface {
	// Find returns the user's settings, or domain.ErrUserNotFound when none
	// have been stored yet.
	Find(ctx context.Context, userID int64) (*domain.NotificationSettings, error)
	Upsert(ctx context.Context, settings *domain.NotificationSettings) error
}

// AdminService covers the admin console operations: customer management,
// member management, and the admin's own account settings. Role enforcement
// happens in the middleware gate; the service additionally refuses mutations
// that would touch admin accounts.
type AdminService interface {
	ListCustomers(ctx context.Context) ([]*domain.User, error)
	GetCustomer(ctx context.Context, id int64) (*domain.User, error)
	// CustomerPayments returns the customer's order history.
	CustomerPayments(ctx context.Context, id int64) ([]*domain.Order, error)
	CreateCustomer(ctx context.Context, email, password, name string) (*domain.User, error)
	// DeleteCustomer removes a role=user account and cascades its cart lines
	// and orders. Non-customer targets (admin, staff) are refused.
	DeleteCustomer(ctx context.Context, actorID, id int64) error

	ListMembers(ctx context.Context) ([]*domain.User, error)
	// InviteMember creates a staff account with a generated password, returned
	// once to the caller and never persisted in the clear.
	InviteMember(ctx context.Context, actorID int64, email, name string) (*domain.User, string, error)
	// DeleteMember removes a staff account. Admin targets are refused
	// unconditionally.
	DeleteMember(ctx context.Context, actorID, id int64) error

	Profile(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, name, email string) error
	ChangePassword(ctx context.Context, id int64, current, next string) error
	UpdateAvatar(ctx context.Context, id int64, avatar string) error
	DeleteAccount(ctx context.Context, id int64) error

	Notifications(ctx context.Context, userID int64) (*domain.NotificationSettings, error)
	UpdateNotifications(ctx context.Context, settings *domain.NotificationSettings) error
}
