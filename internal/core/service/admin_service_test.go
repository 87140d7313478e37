package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/modavn/storefront-api/internal/core/domain"
)

type stubNotificationRepo struct {
	settings map[int64]*domain.NotificationSettings
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{settings: make(map[int64]*domain.NotificationSettings)}
}

func (r *stubNotificationRepo) Find(_ context.Context, userID int64) (*domain.NotificationSettings, error) {
	if s, ok := r.settings[userID]; ok {
		return s, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubNotificationRepo) Upsert(_ context.Context, settings *domain.NotificationSettings) error {
	r.settings[settings.UserID] = settings
	return nil
}

func newTestAdminService(users *stubUserRepo, orders *stubOrderRepo, carts *stubCartRepo) *AdminService {
	return NewAdminService(users, orders, carts, newStubNotificationRepo(), nil, zerolog.Nop())
}

func seedUser(t *testing.T, repo *stubUserRepo, email, role string) *domain.User {
	t.Helper()
	user, err := repo.Create(context.Background(), &domain.User{Email: email, Name: email, Role: role})
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func TestAdminService_DeleteCustomer_Cascades(t *testing.T) {
	users := newStubUserRepo()
	orders := newStubOrderRepo()
	carts := newStubCartRepo()
	svc := newTestAdminService(users, orders, carts)

	customer := seedUser(t, users, "customer@example.com", domain.RoleUser)
	_, _ = orders.Insert(context.Background(), &domain.Order{UserID: customer.ID})
	_ = carts.Insert(context.Background(), customer.ID, 1, 1)

	if err := svc.DeleteCustomer(context.Background(), 99, customer.ID); err != nil {
		t.Fatalf("DeleteCustomer returned error: %v", err)
	}

	if _, err := users.FindByID(context.Background(), customer.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("customer still present: %v", err)
	}
	remainingOrders, _ := orders.ListByUser(context.Background(), customer.ID)
	if len(remainingOrders) != 0 {
		t.Fatalf("expected orders cascaded, got %d", len(remainingOrders))
	}
	remainingLines, _ := carts.ListByUser(context.Background(), customer.ID)
	if len(remainingLines) != 0 {
		t.Fatalf("expected cart cascaded, got %d lines", len(remainingLines))
	}
}

func TestAdminService_DeleteCustomer_RefusesAdmin(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAdminService(users, newStubOrderRepo(), newStubCartRepo())

	admin := seedUser(t, users, "admin@example.com", domain.RoleAdmin)

	err := svc.DeleteCustomer(context.Background(), admin.ID, admin.ID)
	if !errors.Is(err, domain.ErrCannotDeleteAdmin) {
		t.Fatalf("expected ErrCannotDeleteAdmin, got %v", err)
	}
	if _, err := users.FindByID(context.Background(), admin.ID); err != nil {
		t.Fatalf("admin should survive: %v", err)
	}
}

func TestAdminService_InviteMember(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAdminService(users, newStubOrderRepo(), newStubCartRepo())

	member, password, err := svc.InviteMember(context.Background(), 1, "staff@example.com", "Staff")
	if err != nil {
		t.Fatalf("InviteMember returned error: %v", err)
	}
	if member.Role != domain.RoleStaff {
		t.Fatalf("expected staff role, got %s", member.Role)
	}
	if password == "" {
		t.Fatalf("expected a generated password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		t.Fatalf("generated password does not match stored hash: %v", err)
	}
}

func TestAdminService_DeleteMember_RefusesAdmin(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAdminService(users, newStubOrderRepo(), newStubCartRepo())

	admin := seedUser(t, users, "admin@example.com", domain.RoleAdmin)

	if err := svc.DeleteMember(context.Background(), admin.ID, admin.ID); !errors.Is(err, domain.ErrCannotDeleteAdmin) {
		t.Fatalf("expected ErrCannotDeleteAdmin, got %v", err)
	}
}

func TestAdminService_DeleteMember_RefusesCustomerTarget(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAdminService(users, newStubOrderRepo(), newStubCartRepo())

	customer := seedUser(t, users, "customer@example.com", domain.RoleUser)

	if err := svc.DeleteMember(context.Background(), 1, customer.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for non-staff target, got %v", err)
	}
}

func TestAdminService_ChangePassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAdminService(users, newStubOrderRepo(), newStubCartRepo())

	hash, _ := bcrypt.GenerateFromPassword([]byte("old-secret"), bcrypt.DefaultCost)
	admin, _ := users.Create(context.Background(), &domain.User{
		Email: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin, PasswordHash: string(hash),
	})

	if err := svc.ChangePassword(context.Background(), admin.ID, "wrong", "new-secret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong current password, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), admin.ID, "old-secret", "new-secret"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}

	updated, _ := users.FindByID(context.Background(), admin.ID)
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("new-secret")); err != nil {
		t.Fatalf("new password not stored: %v", err)
	}
}

func TestAdminService_Notifications_DefaultsOnFirstRead(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestAdminService(users, newStubOrderRepo(), newStubCartRepo())

	settings, err := svc.Notifications(context.Background(), 42)
	if err != nil {
		t.Fatalf("Notifications returned error: %v", err)
	}
	if !settings.Email || settings.WeeklyDigest {
		t.Fatalf("unexpected defaults: %+v", settings)
	}

	again, err := svc.Notifications(context.Background(), 42)
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if *again != *settings {
		t.Fatalf("defaults not persisted: %+v vs %+v", again, settings)
	}
}
