// ABOUTME: Tests for the auth operations of the Amora API client
// ABOUTME: Uses httptest to mock backend responses and verify session lifecycle

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fespschulte/amora-simulator/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sess := session.New(t.TempDir())
	return New(server.URL, sess), sess
}

func TestLogin_Success(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("expected path /auth/login, got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["email"] != "maria@example.com" {
			t.Errorf("expected email in body, got %v", req)
		}
		json.NewEncoder(w).Encode(LoginResult{
			AccessToken: "tok-123",
			User:        session.Profile{ID: "u-1", Username: "maria", Email: "maria@example.com"},
		})
	}))

	result, err := c.Login(context.Background(), "maria@example.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.User.Username != "maria" {
		t.Errorf("expected username maria, got %s", result.User.Username)
	}
	if !c.IsAuthenticated() {
		t.Error("expected IsAuthenticated true after login")
	}
	if sess.Token() != "tok-123" {
		t.Errorf("expected stored token tok-123, got %q", sess.Token())
	}
	if p := sess.Profile(); p == nil || p.ID != "u-1" {
		t.Errorf("expected cached profile u-1, got %+v", p)
	}
}

func TestLogin_FailureLeavesPriorSession(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "O email e/ou a senha estão incorretos", Code: 400})
	}))

	if err := sess.Save("prior-token", &session.Profile{ID: "u-0"}); err != nil {
		t.Fatal(err)
	}

	_, err := c.Login(context.Background(), "maria@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if sess.Token() != "prior-token" {
		t.Errorf("expected prior session untouched, got token %q", sess.Token())
	}
}

func TestLogin_SurfacesBackendMessage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "conta bloqueada", Code: 400})
	}))

	_, err := c.Login(context.Background(), "maria@example.com", "secret1")
	if err == nil || !strings.Contains(err.Error(), "conta bloqueada") {
		t.Errorf("expected backend message in error, got %v", err)
	}
}

func TestRegister_DoesNotEstablishSession(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("expected path /auth/register, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(session.Profile{ID: "u-2", Username: "joao", Email: "joao@example.com"})
	}))

	profile, err := c.Register(context.Background(), "joao", "joao@example.com", "secret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Username != "joao" {
		t.Errorf("expected username joao, got %s", profile.Username)
	}
	if sess.IsAuthenticated() {
		t.Error("register must not establish a session")
	}
}

func TestMe_WithoutSession(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without a session")
	}))

	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestMe_AttachesBearerToken(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("expected bearer header, got %q", got)
		}
		json.NewEncoder(w).Encode(session.Profile{ID: "u-1", Username: "maria", Email: "maria@example.com"})
	}))

	if err := sess.Save("tok-123", &session.Profile{ID: "u-1"}); err != nil {
		t.Fatal(err)
	}

	profile, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Username != "maria" {
		t.Errorf("expected username maria, got %s", profile.Username)
	}
}

func TestUnauthorizedResponse_TearsDownSession(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "token expired", Code: 401})
	}))

	if err := sess.Save("stale-token", &session.Profile{ID: "u-1"}); err != nil {
		t.Fatal(err)
	}

	expired := false
	c.OnSessionExpired(func() { expired = true })

	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
	if c.IsAuthenticated() {
		t.Error("expected session cleared after 401")
	}
	if sess.Profile() != nil {
		t.Error("expected cached profile cleared after 401")
	}
	if !expired {
		t.Error("expected session expiry hook to fire")
	}
}

func TestLogout_ClearsSessionEvenOnBackendError(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	if err := sess.Save("tok", &session.Profile{ID: "u-1"}); err != nil {
		t.Fatal(err)
	}

	c.Logout(context.Background())

	if c.IsAuthenticated() {
		t.Error("expected session cleared after logout")
	}
}

func TestUpdateProfile_RefreshesCachedProfile(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/auth/me" {
			t.Errorf("expected PUT /auth/me, got %s %s", r.Method, r.URL.Path)
		}
		var update ProfileUpdate
		json.NewDecoder(r.Body).Decode(&update)
		if update.CurrentPassword != "secret1" {
			t.Errorf("expected current password in body, got %+v", update)
		}
		json.NewEncoder(w).Encode(session.Profile{ID: "u-1", Username: update.Username, Email: update.Email})
	}))

	if err := sess.Save("tok", &session.Profile{ID: "u-1", Username: "maria"}); err != nil {
		t.Fatal(err)
	}

	profile, err := c.UpdateProfile(context.Background(), ProfileUpdate{
		Username:        "maria-silva",
		Email:           "maria@example.com",
		CurrentPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Username != "maria-silva" {
		t.Errorf("expected updated username, got %s", profile.Username)
	}
	if p := sess.Profile(); p == nil || p.Username != "maria-silva" {
		t.Errorf("expected cached profile refreshed, got %+v", p)
	}
	if sess.Token() != "tok" {
		t.Error("expected token untouched by profile update")
	}
}

