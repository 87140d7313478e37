package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/modavn/storefront-api/internal/core/domain"
	"github.com/modavn/storefront-api/internal/core/token"
)

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.nextID++
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListByRoles(_ context.Context, roles ...string) ([]*domain.User, error) {
	var out []*domain.User
	for id := int64(1); id < r.nextID; id++ {
		u, ok := r.users[id]
		if !ok {
			continue
		}
		for _, role := range roles {
			if u.Role == role {
				out = append(out, cloneUser(u))
				break
			}
		}
	}
	return out, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id int64, name, email string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Name = name
	u.Email = email
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) UpdateAvatar(_ context.Context, id int64, avatar string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Avatar = avatar
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubThrottle struct {
	blocked  bool
	failures int
	resets   int
}

func (t *stubThrottle) Blocked(context.Context, string) (bool, error) { return t.blocked, nil }
func (t *stubThrottle) RecordFailure(context.Context, string) error   { t.failures++; return nil }
func (t *stubThrottle) Reset(context.Context, string) error           { t.resets++; return nil }

func newTestAuthService(repo *stubUserRepo, throttle LoginThrottle) *AuthService {
	issuer := token.NewIssuer("test-secret", time.Hour)
	return NewAuthService(repo, issuer, throttle, nil, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	signed, user, err := svc.Register(context.Background(), "alice@example.com", "secret1", "Alice")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected a token")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	issuer := token.NewIssuer("test-secret", time.Hour)
	claims, err := issuer.Verify(signed)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("claims do not match user: %+v", claims)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	cases := []struct {
		name            string
		email, password string
	}{
		{"empty email", "", "secret1"},
		{"malformed email", "not-an-email", "secret1"},
		{"short password", "a@example.com", "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tc.email, tc.password, "Alice")
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	if _, _, err := svc.Register(context.Background(), "bob@example.com", "secret1", "Bob"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, _, err := svc.Register(context.Background(), "bob@example.com", "secret1", "Bob")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{}
	svc := newTestAuthService(repo, throttle)

	_, registered, err := svc.Register(context.Background(), "carol@example.com", "secret1", "Carol")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	signed, user, err := svc.Login(context.Background(), "carol@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected a token")
	}
	if user.ID != registered.ID {
		t.Fatalf("login returned a different user: %d vs %d", user.ID, registered.ID)
	}
	if throttle.resets != 1 {
		t.Fatalf("expected throttle reset once, got %d", throttle.resets)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	throttle := &stubThrottle{}
	svc := newTestAuthService(repo, throttle)

	_, _, _ = svc.Register(context.Background(), "dave@example.com", "secret1", "Dave")

	_, _, err := svc.Login(context.Background(), "dave@example.com", "wrong-password")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if throttle.failures != 1 {
		t.Fatalf("expected one recorded failure, got %d", throttle.failures)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, &stubThrottle{blocked: true})

	_, _, err := svc.Login(context.Background(), "eve@example.com", "secret1")
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Profile(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	_, registered, err := svc.Register(context.Background(), "frank@example.com", "secret1", "Frank")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Profile(context.Background(), registered.ID)
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if user.Email != "frank@example.com" {
		t.Fatalf("unexpected profile: %+v", user)
	}

	if _, err := svc.Profile(context.Background(), 9999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
