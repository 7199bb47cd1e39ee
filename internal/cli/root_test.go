// ABOUTME: Tests for root command flag and environment handling
// ABOUTME: Verifies API URL priority and error exit code mapping

package cli

import (
	"errors"
	"testing"

	"github.com/fespschulte/amora-simulator/internal/client"
)

func TestGetAPIURL_Default(t *testing.T) {
	apiURL = ""
	t.Setenv("AMORA_API_URL", "")

	if got := GetAPIURL(); got != defaultAPIURL {
		t.Errorf("GetAPIURL() = %q, want %q", got, defaultAPIURL)
	}
}

func TestGetAPIURL_EnvOverridesDefault(t *testing.T) {
	apiURL = ""
	t.Setenv("AMORA_API_URL", "http://env.example.com/api")

	if got := GetAPIURL(); got != "http://env.example.com/api" {
		t.Errorf("GetAPIURL() = %q", got)
	}
}

func TestGetAPIURL_FlagOverridesEnv(t *testing.T) {
	apiURL = "http://flag.example.com/api"
	defer func() { apiURL = "" }()
	t.Setenv("AMORA_API_URL", "http://env.example.com/api")

	if got := GetAPIURL(); got != "http://flag.example.com/api" {
		t.Errorf("GetAPIURL() = %q", got)
	}
}

func TestSessionDirEnvOverride(t *testing.T) {
	t.Setenv("AMORA_CONFIG_DIR", "/tmp/amora-test")

	if got := sessionDir(); got != "/tmp/amora-test" {
		t.Errorf("sessionDir() = %q", got)
	}
}

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unauthenticated", client.ErrUnauthenticated, 1},
		{"not found", client.ErrNotFound, 1},
		{"wrapped not found", errors.Join(errors.New("get simulation"), client.ErrNotFound), 1},
		{"network", errors.New("connection refused"), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeForError(tt.err); got != tt.want {
				t.Errorf("exitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
