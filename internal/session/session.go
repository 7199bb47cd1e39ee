// ABOUTME: Client-side session storage for the bearer token and cached profile
// ABOUTME: Persists the two fixed entries in the XDG config directory, always cleared together

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	tokenFile   = "auth_token"
	profileFile = "user.json"
)

// Profile is the cached user profile returned by the backend.
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Store persists the active session (bearer token plus profile) on disk.
// There is at most one session per store; Save replaces it atomically and
// Clear removes both entries together.
type Store struct {
	dir string
}

// New creates a session store rooted at the given directory.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the default config directory following XDG spec
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "amora")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "amora")
}

// Save stores the token and profile as the active session, replacing any
// previous one.
func (s *Store) Save(token string, profile *Profile) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0600); err != nil {
		return err
	}
	return s.SetProfile(profile)
}

// SetProfile replaces the cached profile without touching the token.
func (s *Store) SetProfile(profile *Profile) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, profileFile), data, 0600)
}

// Token returns the stored bearer token, or "" when no session exists.
func (s *Store) Token() string {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Profile returns the cached profile, or nil when none is stored.
func (s *Store) Profile() *Profile {
	data, err := os.ReadFile(filepath.Join(s.dir, profileFile))
	if err != nil {
		return nil
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	return &p
}

// IsAuthenticated reports whether a stored credential exists. This is a
// presence-only check: a stale token is detected on first use, when the
// backend's 401 triggers full session teardown.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// Clear removes the token and the cached profile. The two entries are never
// removed independently.
func (s *Store) Clear() {
	os.Remove(filepath.Join(s.dir, tokenFile))
	os.Remove(filepath.Join(s.dir, profileFile))
}
