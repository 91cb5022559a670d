// Package sdk is the Go client for the user-directory API. It owns the
// session lifecycle: a successful login or registration establishes a
// credential, every authenticated call attaches it, and an unauthorized
// response anywhere tears it down and notifies the registered expiry handler.
package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/crewhub/user-directory/pkg/listing"
)

const defaultTimeout = 10 * time.Second

// Client talks to a user-directory server. All authenticated traffic goes
// through a single request path so the unauthorized reaction is uniform
// regardless of which operation triggered it.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	session          *Session
	onSessionExpired func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithStore backs the session with a caller-provided key/value store, letting
// credentials survive process restarts.
func WithStore(store Store) Option {
	return func(c *Client) { c.session = NewSession(store) }
}

// WithSessionExpiredHandler registers the hook fired after a forced
// invalidation, once per offending request. The presentation layer uses it to
// route back to the login entry point.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

// New returns a Client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.session == nil {
		c.session = NewSession(nil)
	}
	return c
}

// Session exposes the session manager for synchronous reads (Current) and
// explicit commands (Establish, Invalidate).
func (c *Client) Session() *Session {
	return c.session
}

// User is one row of the directory listing.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Pagination describes the page of a listing response.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// UserPage is a fetched, server-ordered batch of users. An empty Users slice
// is a valid result, distinct from a fetch that has not completed.
type UserPage struct {
	Users      []User     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// RegisterInput carries a registration form.
type RegisterInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type authPayload struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

// Login authenticates with email/password and establishes the session on
// success. Rejected credentials map to ErrInvalidCredentials and leave any
// existing session alone.
func (c *Client) Login(ctx context.Context, email, password string) (Identity, error) {
	body := map[string]string{"email": email, "password": password}

	var resp authPayload
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &resp, false); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusNotFound) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, err
	}

	id := Identity{ID: resp.User.ID, Name: resp.User.Name, Email: resp.User.Email}
	c.session.Establish(Credential{Token: resp.Token, User: id})
	return id, nil
}

// Register creates an account and, like the reference flow, logs straight in:
// the returned credential is established immediately.
func (c *Client) Register(ctx context.Context, in RegisterInput) (Identity, error) {
	var resp authPayload
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, in, &resp, false); err != nil {
		return Identity{}, err
	}

	id := Identity{ID: resp.User.ID, Name: resp.User.Name, Email: resp.User.Email}
	c.session.Establish(Credential{Token: resp.Token, User: id})
	return id, nil
}

// FetchUsers retrieves one page of the directory ordered by state. The server
// applies the same comparator semantics as pkg/listing, so re-ordering a
// fetched page locally is a no-op.
func (c *Client) FetchUsers(ctx context.Context, state listing.State, page, limit int) (*UserPage, error) {
	q := url.Values{}
	q.Set("sort", string(state.Field))
	q.Set("direction", string(state.Direction))
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out UserPage
	if err := c.do(ctx, http.MethodGet, "/v1/users", q, nil, &out, true); err != nil {
		return nil, err
	}
	if out.Users == nil {
		out.Users = []User{}
	}
	return &out, nil
}

// Logout ends the session. The server call revokes the token but is
// best-effort: the local credential is removed even when the call fails, and
// a server-side "already unauthorized" outcome is not an error.
func (c *Client) Logout(ctx context.Context) error {
	if _, ok := c.session.Current(); !ok {
		return nil
	}

	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil, true)
	c.session.Invalidate()
	if errors.Is(err, ErrSessionExpired) {
		return nil
	}
	return err
}

// do is the single request funnel. For authenticated calls it attaches the
// credential before sending and reacts to a 401 by invalidating the session
// and firing the expiry handler, no matter which operation made the call.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) error {
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(raw)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, rdr)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		c.session.Attach(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if authed && resp.StatusCode == http.StatusUnauthorized {
		c.session.Invalidate()
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeError turns the server's {"error": "..."} envelope into a typed error.
func decodeError(status int, body []byte) error {
	var env struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &env)

	msg := env.Error
	if msg == "" {
		msg = env.Message
	}
	if msg == "" {
		msg = strings.ToLower(http.StatusText(status))
	}

	switch status {
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return &ValidationError{Message: msg}
	}
	return &APIError{StatusCode: status, Message: msg}
}
