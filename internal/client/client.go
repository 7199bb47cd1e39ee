// ABOUTME: HTTP client for the Amora simulator API
// ABOUTME: Attaches the bearer credential to every request and handles 401 teardown globally

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fespschulte/amora-simulator/internal/session"
)

// Sentinel errors matching the API error taxonomy. Validation errors are
// resolved by the form layer and never reach this package.
var (
	// ErrUnauthenticated indicates a missing or rejected credential.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrNotFound indicates the referenced record does not exist.
	ErrNotFound = errors.New("not found")
)

// ErrorResponse represents an API error body
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// Client is the API client for the Amora simulator backend. All operations
// attach the stored bearer token when present; a 401 from any endpoint tears
// down the local session and fires the expiry hook.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store
	onExpired  func()
}

// New creates a new API client with the given base URL and session store.
func New(baseURL string, sess *session.Store) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		session: sess,
	}
}

// OnSessionExpired registers a hook invoked after a 401 forces session
// teardown. The view layer uses it as the redirect-to-login signal.
func (c *Client) OnSessionExpired(fn func()) {
	c.onExpired = fn
}

// IsAuthenticated reports whether a stored credential exists. Presence-only:
// stale tokens are caught by the 401 interceptor on first use.
func (c *Client) IsAuthenticated() bool {
	return c.session.IsAuthenticated()
}

// CachedProfile returns the locally cached user profile, if any.
func (c *Client) CachedProfile() *session.Profile {
	return c.session.Profile()
}

// do executes a request against the backend. body and out may be nil.
// Non-2xx statuses are mapped to the error taxonomy; the backend-provided
// message is surfaced when present.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("invalid response from backend: %w", err)
		}
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse maps API error responses to the error taxonomy.
// A 401 on any endpoint clears the stored credential and profile before
// returning, so isAuthenticated reports false afterwards.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp ErrorResponse
	message := ""
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
		message = errResp.Error
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		c.teardown()
		if message == "" {
			message = "session expired"
		}
		return fmt.Errorf("%w: %s", ErrUnauthenticated, message)
	case http.StatusNotFound:
		if message == "" {
			message = "record not found"
		}
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	default:
		if message == "" {
			return fmt.Errorf("backend returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("backend error: %s", message)
	}
}

// teardown clears the local session and notifies the view layer once.
func (c *Client) teardown() {
	c.session.Clear()
	if c.onExpired != nil {
		c.onExpired()
	}
}
