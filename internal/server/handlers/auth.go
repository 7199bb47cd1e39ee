// ABOUTME: Auth handlers for register, login, and profile management
// ABOUTME: Issues bearer access tokens; profile updates re-verify the current password

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fespschulte/amora-simulator/internal/server/middleware"
	"github.com/fespschulte/amora-simulator/internal/server/password"
	"github.com/fespschulte/amora-simulator/internal/server/storage"
	"github.com/fespschulte/amora-simulator/internal/server/token"
)

const minPasswordLength = 6

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	User        userResponse `json:"user"`
}

type profileUpdateRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password,omitempty"`
}

// Register creates a new account. It does not establish a session.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" {
		h.writeError(w, "Username and email are required", http.StatusBadRequest)
		return
	}
	if !strings.Contains(req.Email, "@") {
		h.writeError(w, "Invalid email address", http.StatusBadRequest)
		return
	}
	if len(req.Password) < minPasswordLength {
		h.writeError(w, "Password must be at least 6 characters", http.StatusBadRequest)
		return
	}

	if _, err := h.store.UserByUsername(req.Username); err == nil {
		h.writeError(w, "Username already registered", http.StatusBadRequest)
		return
	}
	if _, err := h.store.UserByEmail(req.Email); err == nil {
		h.writeError(w, "Email já registrado", http.StatusBadRequest)
		return
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		h.writeError(w, "Failed to create account", http.StatusInternalServerError)
		return
	}

	user := &storage.User{Username: req.Username, Email: req.Email, PasswordHash: hash}
	if err := h.store.CreateUser(user); err != nil {
		slog.Error("Failed to create user", "error", err)
		h.writeError(w, "Failed to create account", http.StatusInternalServerError)
		return
	}

	slog.Info("User registered", "user_id", user.ID, "username", user.Username)
	h.writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// Login authenticates credentials and returns a bearer token with the
// user profile.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		h.writeError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.store.UserByEmail(strings.TrimSpace(req.Email))
	if err != nil || !password.Verify(req.Password, user.PasswordHash) {
		slog.Warn("Authentication failed", "email", req.Email)
		h.writeError(w, "O email e/ou a senha estão incorretos", http.StatusUnauthorized)
		return
	}

	if err := h.store.RecordLogin(user.ID, time.Now().UTC()); err != nil {
		slog.Warn("Failed to record login", "user_id", user.ID, "error", err)
	}

	ttl := time.Duration(h.cfg.TokenTTLMinutes) * time.Minute
	accessToken, err := token.Generate(user.ID, user.Email, h.cfg.JWTSecret, ttl)
	if err != nil {
		slog.Error("Failed to issue token", "error", err)
		h.writeError(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	slog.Info("User logged in", "user_id", user.ID)
	h.writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: accessToken,
		User:        toUserResponse(user),
	})
}

// Logout acknowledges the request. Access tokens are stateless; the client
// discards its local session regardless of this response.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Me returns the profile for the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}
	h.writeJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateMe updates profile fields after re-verifying the current password.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	var req profileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !password.Verify(req.CurrentPassword, user.PasswordHash) {
		h.writeError(w, "Senha atual incorreta", http.StatusBadRequest)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" {
		h.writeError(w, "Username and email are required", http.StatusBadRequest)
		return
	}

	if req.Username != user.Username {
		if _, err := h.store.UserByUsername(req.Username); err == nil {
			h.writeError(w, "Username already registered", http.StatusBadRequest)
			return
		}
	}
	if req.Email != user.Email {
		if _, err := h.store.UserByEmail(req.Email); err == nil {
			h.writeError(w, "Email já registrado", http.StatusBadRequest)
			return
		}
	}

	user.Username = req.Username
	user.Email = req.Email
	if req.NewPassword != "" {
		if len(req.NewPassword) < minPasswordLength {
			h.writeError(w, "Password must be at least 6 characters", http.StatusBadRequest)
			return
		}
		hash, err := password.Hash(req.NewPassword)
		if err != nil {
			slog.Error("Failed to hash password", "error", err)
			h.writeError(w, "Failed to update profile", http.StatusInternalServerError)
			return
		}
		user.PasswordHash = hash
	}

	if err := h.store.UpdateUser(user); err != nil {
		slog.Error("Failed to update user", "user_id", user.ID, "error", err)
		h.writeError(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	slog.Info("Profile updated", "user_id", user.ID)
	h.writeJSON(w, http.StatusOK, toUserResponse(user))
}

// currentUser loads the user for the request's claims, writing the error
// response when this fails.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) *storage.User {
	claims := middleware.GetUserClaims(r)
	if claims == nil {
		h.writeError(w, "Authentication required", http.StatusUnauthorized)
		return nil
	}

	user, err := h.store.UserByID(claims.Subject)
	if errors.Is(err, storage.ErrNotFound) {
		// Account deleted while the token was still live.
		h.writeError(w, "Authentication required", http.StatusUnauthorized)
		return nil
	}
	if err != nil {
		slog.Error("Failed to load user", "user_id", claims.Subject, "error", err)
		h.writeError(w, "Internal error", http.StatusInternalServerError)
		return nil
	}
	return user
}
