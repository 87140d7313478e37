package session

import (
	"net/http"
	"net/url"
	"sync"
	"time"
)

// TokenStorage abstracts where the session token lives between runs. All
// session code goes through this single contract, regardless of backing.
type TokenStorage interface {
	// Get returns the stored token, or "" when none is present.
	Get() (string, error)
	Set(token string) error
	Clear() error
}

// MemoryStorage keeps the token in process memory. Suitable for tests and
// short-lived clients.
type MemoryStorage struct {
	mu    sync.Mutex
	token string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStorage) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStorage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

const cookieName = "auth_token"

// CookieStorage keeps the token in an http.CookieJar under the API origin, so
// a browser-like client carries it automatically.
type CookieStorage struct {
	jar    http.CookieJar
	origin *url.URL
}

func NewCookieStorage(jar http.CookieJar, origin *url.URL) *CookieStorage {
	return &CookieStorage{jar: jar, origin: origin}
}

func (s *CookieStorage) Get() (string, error) {
	for _, c := range s.jar.Cookies(s.origin) {
		if c.Name == cookieName {
			return c.Value, nil
		}
	}
	return "", nil
}

func (s *CookieStorage) Set(token string) error {
	s.jar.SetCookies(s.origin, []*http.Cookie{{
		Name:    cookieName,
		Value:   token,
		Path:    "/",
		Expires: time.Now().Add(24 * time.Hour),
	}})
	return nil
}

func (s *CookieStorage) Clear() error {
	s.jar.SetCookies(s.origin, []*http.Cookie{{
		Name:    cookieName,
		Value:   "",
		Path:    "/",
		Expires: time.Unix(0, 0),
		MaxAge:  -1,
	}})
	return nil
}
