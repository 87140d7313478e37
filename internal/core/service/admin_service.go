package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/mail"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/modavn/storefront-api/internal/core/domain"
	"github.com/modavn/storefront-api/internal/core/ports"
)

// AdminService implements the admin console operations. The role gate in the
// middleware has already proven the caller is an admin; this layer enforces
// the target-side rules (admin accounts are untouchable).
type AdminService struct {
	users         ports.UserRepository
	orders        ports.OrderRepository
	carts         ports.CartRepository
	notifications ports.NotificationRepository
	activity      ports.ActivitySink
	logger        zerolog.Logger
}

func NewAdminService(
	users ports.UserRepository,
	orders ports.OrderRepository,
	carts ports.CartRepository,
	notifications ports.NotificationRepository,
	activity ports.ActivitySink,
	logger zerolog.Logger,
) *AdminService {
	if activity == nil {
		activity = ports.NoopActivitySink{}
	}
	return &AdminService{
		users:         users,
		orders:        orders,
		carts:         carts,
		notifications: notifications,
		activity:      activity,
		logger:        logger,
	}
}

// --- Customers ---

func (s *AdminService) ListCustomers(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListByRoles(ctx, domain.RoleUser)
}

func (s *AdminService) GetCustomer(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleUser {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *AdminService) CustomerPayments(ctx context.Context, id int64) ([]*domain.Order, error) {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return nil, err
	}
	return s.orders.ListByUser(ctx, id)
}

func (s *AdminService) CreateCustomer(ctx context.Context, email, password, name string) (*domain.User, error) {
	if err := validateRegistration(email, password, name); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	})
}

// DeleteCustomer removes a customer and cascades orders and cart lines.
// Targets that are not plain customers are refused regardless of who asks.
func (s *AdminService) DeleteCustomer(ctx context.Context, actorID, id int64) error {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleAdmin {
		return domain.ErrCannotDeleteAdmin
	}
	if target.Role != domain.RoleUser {
		return domain.ErrUserNotFound
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.orders.DeleteByUser(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("user_id", id).Msg("customer deleted but order cascade failed")
	}
	if err := s.carts.Clear(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("user_id", id).Msg("customer deleted but cart cascade failed")
	}

	s.activity.Record(domain.ActivityEvent{
		Type:       domain.ActivityCustomerDeleted,
		UserID:     id,
		ActorID:    actorID,
		Email:      target.Email,
		OccurredAt: time.Now().UTC(),
	})

	return nil
}

// --- Members ---

func (s *AdminService) ListMembers(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListByRoles(ctx, domain.RoleAdmin, domain.RoleStaff)
}

// InviteMember creates a staff account with a generated password. The plain
// password is returned exactly once so the admin can hand it to the invitee.
func (s *AdminService) InviteMember(ctx context.Context, actorID int64, email, name string) (*domain.User, string, error) {
	if email == "" || name == "" {
		return nil, "", domain.ErrInvalidCredentials
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	password, err := generatePassword()
	if err != nil {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	member, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         domain.RoleStaff,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, "", err
	}

	s.activity.Record(domain.ActivityEvent{
		Type:       domain.ActivityMemberInvited,
		UserID:     member.ID,
		ActorID:    actorID,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	})

	return member, password, nil
}

// DeleteMember removes a staff account. Admin targets are refused
// unconditionally, whoever the requester is.
func (s *AdminService) DeleteMember(ctx context.Context, actorID, id int64) error {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleAdmin {
		return domain.ErrCannotDeleteAdmin
	}
	if target.Role != domain.RoleStaff {
		return domain.ErrUserNotFound
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.activity.Record(domain.ActivityEvent{
		Type:       domain.ActivityMemberDeleted,
		UserID:     id,
		ActorID:    actorID,
		Email:      target.Email,
		Metadata:   map[string]string{"member_id": strconv.FormatInt(id, 10)},
		OccurredAt: time.Now().UTC(),
	})

	return nil
}

// --- Admin account settings ---

func (s *AdminService) Profile(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *AdminService) UpdateProfile(ctx context.Context, id int64, name, email string) error {
	if name == "" || email == "" {
		return domain.ErrInvalidCredentials
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.ErrInvalidCredentials
	}
	return s.users.UpdateProfile(ctx, id, name, email)
}

func (s *AdminService) ChangePassword(ctx context.Context, id int64, current, next string) error {
	if current == "" || len(next) < minPasswordLength {
		return domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, id, string(hash))
}

func (s *AdminService) UpdateAvatar(ctx context.Context, id int64, avatar string) error {
	if avatar == "" {
		return domain.ErrInvalidCredentials
	}
	return s.users.UpdateAvatar(ctx, id, avatar)
}

func (s *AdminService) DeleteAccount(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

// --- Notification settings ---

// Notifications returns the user's settings, creating the defaults on first read.
func (s *AdminService) Notifications(ctx context.Context, userID int64) (*domain.NotificationSettings, error) {
	settings, err := s.notifications.Find(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	settings = domain.DefaultNotificationSettings(userID)
	if err := s.notifications.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *AdminService) UpdateNotifications(ctx context.Context, settings *domain.NotificationSettings) error {
	return s.notifications.Upsert(ctx, settings)
}

// generatePassword returns a random 12-hex-char invite password.
func generatePassword() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
