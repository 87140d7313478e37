package session

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/modavn/storefront-api/internal/core/domain"
)

// State describes where the session is in its lifecycle.
type State int

const (
	// StateEmpty is the zero state before the first Initialize.
	StateEmpty State = iota
	// StateInitializing means a profile fetch is in flight.
	StateInitializing
	// StateAuthenticated means a token and a profile are both present.
	StateAuthenticated
	// StateUnauthenticated means initialization finished without a valid token.
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "empty"
	}
}

// Session is the client-side authentication state machine. The invariant it
// maintains: StateAuthenticated holds exactly when a token is stored and a
// profile is loaded.
type Session struct {
	api    API
	tokens TokenStorage

	group singleflight.Group

	mu          sync.Mutex
	state       State
	user        *domain.User
	initialized bool
}

func New(api API, tokens TokenStorage) *Session {
	return &Session{
		api:    api,
		tokens: tokens,
		state:  StateEmpty,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the loaded profile, or nil when unauthenticated.
func (s *Session) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Authenticated reports whether the session holds a valid token and profile.
func (s *Session) Authenticated() bool {
	return s.State() == StateAuthenticated
}

// Initialize restores the session from stored state. Concurrent callers share
// a single profile fetch; once the session is initialized the call is a no-op.
// A stored token that the backend rejects is cleared silently: the session
// ends up unauthenticated but initialized, never in an error loop.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return nil
	}
	s.state = StateInitializing
	s.mu.Unlock()

	_, err, _ := s.group.Do("initialize", func() (any, error) {
		// Re-check under the lock: a caller that raced past the fast path
		// above may arrive after the shared flight already finished.
		s.mu.Lock()
		done := s.initialized
		s.mu.Unlock()
		if done {
			return nil, nil
		}
		return nil, s.restore(ctx)
	})
	return err
}

func (s *Session) restore(ctx context.Context) error {
	token, err := s.tokens.Get()
	if err != nil {
		return err
	}

	if token == "" {
		s.finish(nil)
		return nil
	}

	user, err := s.api.Profile(ctx, token)
	if err != nil {
		// Stale or revoked token: drop it and continue unauthenticated.
		_ = s.tokens.Clear()
		s.finish(nil)
		return nil
	}

	s.finish(user)
	return nil
}

func (s *Session) finish(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	if user != nil {
		s.state = StateAuthenticated
	} else {
		s.state = StateUnauthenticated
	}
	s.initialized = true
}

// Login authenticates against the backend and stores the resulting token and
// profile. On failure the session state is left untouched.
func (s *Session) Login(ctx context.Context, email, password string) (*domain.User, error) {
	token, user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.establish(token, user)
}

// Register creates an account and establishes the session in one step.
func (s *Session) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	token, user, err := s.api.Register(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	return s.establish(token, user)
}

func (s *Session) establish(token string, user *domain.User) (*domain.User, error) {
	if err := s.tokens.Set(token); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.state = StateAuthenticated
	s.initialized = true
	return user, nil
}

// Logout clears the session locally. No backend call is made; the token is
// simply discarded and the next Initialize starts fresh.
func (s *Session) Logout() error {
	if err := s.tokens.Clear(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.state = StateEmpty
	s.initialized = false
	return nil
}
