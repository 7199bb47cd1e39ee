// ABOUTME: Session and auth operations for the Amora API client
// ABOUTME: Login establishes the local session; logout and 401 responses tear it down

package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fespschulte/amora-simulator/internal/session"
)

// LoginResult is the successful login response.
type LoginResult struct {
	AccessToken string          `json:"access_token"`
	User        session.Profile `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate carries the mutable profile fields. The backend requires the
// current password to accept any change.
type ProfileUpdate struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password,omitempty"`
}

// Login authenticates with the backend and stores the returned token and
// profile as the active session. On failure the prior session is untouched.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &result)
	if err != nil {
		return nil, err
	}

	if err := c.session.Save(result.AccessToken, &result.User); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return &result, nil
}

// Register creates a new account. It does not establish a session; callers
// log in separately.
func (c *Client) Register(ctx context.Context, username, email, password string) (*session.Profile, error) {
	var profile session.Profile
	err := c.do(ctx, http.MethodPost, "/auth/register", registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Logout notifies the backend best-effort and always clears the local
// session, even when the call fails.
func (c *Client) Logout(ctx context.Context) {
	c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.session.Clear()
}

// Me fetches the profile for the active credential. Fails with
// ErrUnauthenticated when no session exists or the backend rejects it.
func (c *Client) Me(ctx context.Context) (*session.Profile, error) {
	if !c.session.IsAuthenticated() {
		return nil, fmt.Errorf("%w: no active session", ErrUnauthenticated)
	}

	var profile session.Profile
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates profile fields and refreshes the cached profile on
// success.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*session.Profile, error) {
	if !c.session.IsAuthenticated() {
		return nil, fmt.Errorf("%w: no active session", ErrUnauthenticated)
	}

	var profile session.Profile
	if err := c.do(ctx, http.MethodPut, "/auth/me", update, &profile); err != nil {
		return nil, err
	}
	if err := c.session.SetProfile(&profile); err != nil {
		return nil, fmt.Errorf("failed to refresh cached profile: %w", err)
	}
	return &profile, nil
}
