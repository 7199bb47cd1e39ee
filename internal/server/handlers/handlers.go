// ABOUTME: HTTP handler plumbing for the Amora simulator API
// ABOUTME: Shared response helpers and wire types for users and simulations

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fespschulte/amora-simulator/internal/finance"
	"github.com/fespschulte/amora-simulator/internal/server/config"
	"github.com/fespschulte/amora-simulator/internal/server/storage"
)

type Handler struct {
	cfg   *config.Config
	store *storage.Storage
}

func NewHandler(cfg *config.Config, store *storage.Storage) *Handler {
	return &Handler{cfg: cfg, store: store}
}

// userResponse is the public shape of a user profile.
type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *storage.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// simulationResponse is the public shape of a simulation record.
type simulationResponse struct {
	ID                    string  `json:"id"`
	UserID                string  `json:"user_id"`
	PropertyValue         float64 `json:"property_value"`
	DownPaymentPercentage float64 `json:"down_payment_percentage"`
	ContractYears         int     `json:"contract_years"`
	Name                  string  `json:"name,omitempty"`
	Notes                 string  `json:"notes,omitempty"`
	finance.Breakdown
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toSimulationResponse(s *storage.Simulation) simulationResponse {
	return simulationResponse{
		ID:                    s.ID,
		UserID:                s.UserID,
		PropertyValue:         s.PropertyValue,
		DownPaymentPercentage: s.DownPaymentPercentage,
		ContractYears:         s.ContractYears,
		Name:                  s.Name,
		Notes:                 s.Notes,
		Breakdown:             s.Breakdown,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}{
		Error: message,
		Code:  code,
	})
}
