// Package session provides the client-side view of authentication: an API
// client, token storage, an explicit session state machine, and a route
// guard built on top of it.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/modavn/storefront-api/internal/core/domain"
)

// ErrUnauthorized reports a rejected or missing token.
var ErrUnauthorized = errors.New("session: unauthorized")

// API is the backend surface the session machine depends on.
type API interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Register(ctx context.Context, email, password, name string) (string, *domain.User, error)
	// Profile fetches the account for the given token.
	Profile(ctx context.Context, token string) (*domain.User, error)
}

// APIError carries a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("session: api status %d: %s", e.Status, e.Message)
}

const defaultRequestTimeout = 10 * time.Second

// Client is the HTTP implementation of API.
type Client struct {
	base *url.URL
	http *http.Client
}

var _ API = (*Client)(nil)

func NewClient(baseURL string) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	return &Client{
		base: base,
		http: &http.Client{Timeout: defaultRequestTimeout},
	}, nil
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type profileResponse struct {
	User *domain.User `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	body := map[string]string{"email": email, "password": password}
	var out authResponse
	if err := c.post(ctx, "/auth/login", body, &out); err != nil {
		return "", nil, err
	}
	return out.Token, out.User, nil
}

func (c *Client) Register(ctx context.Context, email, password, name string) (string, *domain.User, error) {
	body := map[string]string{"email": email, "password": password, "name": name}
	var out authResponse
	if err := c.post(ctx, "/auth/register", body, &out); err != nil {
		return "", nil, err
	}
	return out.Token, out.User, nil
}

func (c *Client) Profile(ctx context.Context, token string) (*domain.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.String()+"/auth/profile", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var out profileResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base.String()+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
