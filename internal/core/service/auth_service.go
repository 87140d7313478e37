package service

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/modavn/storefront-api/internal/api/metrics"
	"github.com/modavn/storefront-api/internal/core/domain"
	"github.com/modavn/storefront-api/internal/core/ports"
	"github.com/modavn/storefront-api/internal/core/token"
)

const minPasswordLength = 6

// dummyHash is compared against when the email is unknown, so login cost does
// not reveal whether the account exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("storefront-dummy"), bcrypt.DefaultCost)

// LoginThrottle abstracts the failed-login counter (Redis).
type LoginThrottle interface {
	// Blocked reports whether the identifier has exceeded the failure budget.
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements registration, login and profile lookup.
type AuthService struct {
	repo     ports.UserRepository
	issuer   *token.Issuer
	throttle LoginThrottle
	activity ports.ActivitySink
	logger   zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	issuer *token.Issuer,
	throttle LoginThrottle,
	activity ports.ActivitySink,
	logger zerolog.Logger,
) *AuthService {
	if activity == nil {
		activity = ports.NoopActivitySink{}
	}
	return &AuthService{repo: repo, issuer: issuer, throttle: throttle, activity: activity, logger: logger}
}

// Register creates an account with the default role and returns a fresh token.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (string, *domain.User, error) {
	if err := validateRegistration(email, password, name); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		}
		return "", nil, err
	}

	signed, err := s.issuer.Issue(created)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", created.ID).Msg("failed to issue token after register")
		return "", nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.activity.Record(domain.ActivityEvent{
		Type:       domain.ActivityRegister,
		UserID:     created.ID,
		ActorID:    created.ID,
		Email:      created.Email,
		OccurredAt: time.Now().UTC(),
	})
	s.logger.Info().Int64("user_id", created.ID).Msg("user registered")

	return signed, created, nil
}

// Login verifies the credentials and returns a fresh token. Failures never
// distinguish an unknown email from a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, email)
		if err != nil {
			s.logger.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		} else if blocked {
			metrics.LoginThrottledTotal.Inc()
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn the same bcrypt cost as the found path.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			s.recordLoginFailure(ctx, email, 0)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordLoginFailure(ctx, email, user.ID)
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to issue token after login")
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.activity.Record(domain.ActivityEvent{
		Type:       domain.ActivityLoginSuccess,
		UserID:     user.ID,
		ActorID:    user.ID,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	})

	return signed, user, nil
}

// Profile returns the user behind a verified token, without the password hash.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *AuthService) recordLoginFailure(ctx context.Context, email string, userID int64) {
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("failed to record login failure")
		}
	}
	s.activity.Record(domain.ActivityEvent{
		Type:       domain.ActivityLoginFailure,
		UserID:     userID,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	})
}

func validateRegistration(email, password, name string) error {
	if email == "" || password == "" || name == "" {
		return domain.ErrInvalidCredentials
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.ErrInvalidCredentials
	}
	if len(password) < minPasswordLength {
		return domain.ErrInvalidCredentials
	}
	return nil
}
