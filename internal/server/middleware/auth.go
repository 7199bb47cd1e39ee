// ABOUTME: Bearer token authentication middleware
// ABOUTME: Validates JWT access tokens and exposes user claims on the request context

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fespschulte/amora-simulator/internal/server/token"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey string

const userClaimsKey contextKey = "userClaims"

// RequireAuth returns middleware that rejects requests without a valid
// bearer access token. Valid claims are attached to the request context.
func RequireAuth(secret string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				slog.Debug("Auth rejected: no credential", "path", r.URL.Path)
				writeJSONError(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				slog.Debug("Auth rejected: invalid format", "path", r.URL.Path)
				writeJSONError(w, "Invalid authorization format", http.StatusUnauthorized)
				return
			}

			claims, err := token.Validate(strings.TrimPrefix(authHeader, "Bearer "), secret)
			if err != nil {
				slog.Debug("Auth rejected: invalid token", "path", r.URL.Path, "error", err.Error())
				writeJSONError(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

// GetUserClaims extracts user claims from request context.
// Returns nil if no claims are present.
func GetUserClaims(r *http.Request) *token.Claims {
	claims, ok := r.Context().Value(userClaimsKey).(*token.Claims)
	if !ok {
		return nil
	}
	return claims
}
