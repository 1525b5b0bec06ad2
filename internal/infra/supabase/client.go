package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/BruksfildServices01/ink-agenda/internal/domain/user"
)

type Config struct {
	URL            string
	AnonKey        string
	ServiceRoleKey string
}

// Client speaks to the Supabase Auth (GoTrue) REST API.
type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	http       *http.Client
}

func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		anonKey:    cfg.AnonKey,
		serviceKey: cfg.ServiceRoleKey,
		http:       httpClient,
	}
}

// APIError carries the status and message returned by Supabase.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase: status %d: %s", e.Status, e.Message)
}

// Is maps client errors (4xx) to user.ErrIdentityRejected.
func (e *APIError) Is(target error) bool {
	return target == user.ErrIdentityRejected && e.Status >= 400 && e.Status < 500
}

// --------------------------------------------------
// Admin API (service role)
// --------------------------------------------------

func (c *Client) CreateIdentity(ctx context.Context, email, password string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/v1/admin/users", c.serviceKey, c.serviceKey, map[string]any{
		"email":         email,
		"password":      password,
		"email_confirm": true,
	})
	if err != nil {
		return "", err
	}

	id := gjson.GetBytes(body, "id").String()
	if id == "" {
		return "", fmt.Errorf("supabase: create user: missing id in response")
	}
	return id, nil
}

func (c *Client) LinkLocalID(ctx context.Context, authID string, localID uint) error {
	_, err := c.do(ctx, http.MethodPut, "/auth/v1/admin/users/"+url.PathEscape(authID), c.serviceKey, c.serviceKey, map[string]any{
		"user_metadata": map[string]any{"local_id": localID},
	})
	return err
}

func (c *Client) DeleteIdentity(ctx context.Context, authID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/auth/v1/admin/users/"+url.PathEscape(authID), c.serviceKey, c.serviceKey, nil)
	return err
}

// --------------------------------------------------
// Public API (anon key)
// --------------------------------------------------

func (c *Client) SignIn(ctx context.Context, email, password string) (string, user.Identity, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", c.anonKey, c.anonKey, map[string]any{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", user.Identity{}, err
	}

	res := gjson.ParseBytes(body)
	token := res.Get("access_token").String()
	if token == "" {
		return "", user.Identity{}, &APIError{Status: http.StatusUnauthorized, Message: "missing access_token"}
	}
	return token, identityFrom(res.Get("user")), nil
}

func (c *Client) SendRecovery(ctx context.Context, email, redirectTo string) error {
	path := "/auth/v1/recover"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	_, err := c.do(ctx, http.MethodPost, path, c.anonKey, c.anonKey, map[string]any{"email": email})
	return err
}

func (c *Client) GetIdentity(ctx context.Context, accessToken string) (user.Identity, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/v1/user", c.anonKey, accessToken, nil)
	if err != nil {
		return user.Identity{}, err
	}
	return identityFrom(gjson.ParseBytes(body)), nil
}

func (c *Client) UpdatePassword(ctx context.Context, accessToken, password string) error {
	_, err := c.do(ctx, http.MethodPut, "/auth/v1/user", c.anonKey, accessToken, map[string]any{
		"password": password,
	})
	return err
}

var _ user.IdentityProvider = (*Client)(nil)

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func identityFrom(u gjson.Result) user.Identity {
	return user.Identity{
		AuthID:  u.Get("id").String(),
		Email:   u.Get("email").String(),
		LocalID: uint(u.Get("user_metadata.local_id").Uint()),
	}
}

func (c *Client) do(ctx context.Context, method, path, apiKey, bearer string, payload any) ([]byte, error) {
	if c.baseURL == "" || apiKey == "" {
		return nil, user.ErrIdentityNotConfigured
	}

	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("supabase: marshal: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("supabase: new request: %w", err)
	}
	req.Header.Set("apikey", apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("supabase: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: errorMessage(body)}
	}
	return body, nil
}

// errorMessage reads the message from any of the error shapes GoTrue uses.
func errorMessage(body []byte) string {
	for _, path := range []string{"msg", "message", "error_description", "error"} {
		if v := gjson.GetBytes(body, path); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return strings.TrimSpace(string(body))
}
