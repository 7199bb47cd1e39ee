// ABOUTME: Shared harness for end-to-end tests
// ABOUTME: Runs the real API client against the real server over HTTP

package e2e

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/fespschulte/amora-simulator/internal/client"
	"github.com/fespschulte/amora-simulator/internal/server/config"
	"github.com/fespschulte/amora-simulator/internal/server/handlers"
	"github.com/fespschulte/amora-simulator/internal/server/storage"
	"github.com/fespschulte/amora-simulator/internal/session"
)

// newStack starts a backend on an in-memory database and returns a client
// bound to a fresh session store.
func newStack(t *testing.T) (*client.Client, *session.Store) {
	t.Helper()

	store, err := storage.New(":memory:")
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{
		JWTSecret:       "e2e-secret",
		TokenTTLMinutes: 60,
	}
	srv := httptest.NewServer(handlers.NewHandler(cfg, store).Routes())
	t.Cleanup(srv.Close)

	sess := session.New(t.TempDir())
	return client.New(srv.URL+"/api", sess), sess
}

// signUp registers and logs in a fresh account.
func signUp(t *testing.T, c *client.Client, username, email string) {
	t.Helper()

	ctx := context.Background()
	if _, err := c.Register(ctx, username, email, "hunter22"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := c.Login(ctx, email, "hunter22"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
}
