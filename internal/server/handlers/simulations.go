// ABOUTME: Simulation CRUD handlers scoped to the authenticated owner
// ABOUTME: Derived fields are computed server-side on create and update

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fespschulte/amora-simulator/internal/finance"
	"github.com/fespschulte/amora-simulator/internal/server/storage"
)

type simulationRequest struct {
	PropertyValue         float64 `json:"property_value"`
	DownPaymentPercentage float64 `json:"down_payment_percentage"`
	ContractYears         int     `json:"contract_years"`
	Name                  string  `json:"name"`
	Notes                 string  `json:"notes"`
}

func (req *simulationRequest) validate() string {
	if req.PropertyValue <= 0 {
		return "Property value must be positive"
	}
	if req.DownPaymentPercentage < 0 || req.DownPaymentPercentage > 100 {
		return "Down payment percentage must be between 0 and 100"
	}
	if req.ContractYears <= 0 {
		return "Contract years must be positive"
	}
	return ""
}

// ListSimulations returns the authenticated user's simulations.
func (h *Handler) ListSimulations(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	sims, err := h.store.SimulationsByUser(user.ID)
	if err != nil {
		slog.Error("Failed to list simulations", "user_id", user.ID, "error", err)
		h.writeError(w, "Failed to list simulations", http.StatusInternalServerError)
		return
	}

	resp := make([]simulationResponse, 0, len(sims))
	for i := range sims {
		resp = append(resp, toSimulationResponse(&sims[i]))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// CreateSimulation persists a new simulation with server-computed derived
// fields.
func (h *Handler) CreateSimulation(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	var req simulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		h.writeError(w, msg, http.StatusBadRequest)
		return
	}

	breakdown, err := finance.Compute(req.PropertyValue, req.DownPaymentPercentage, req.ContractYears)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sim := &storage.Simulation{
		UserID:                user.ID,
		PropertyValue:         req.PropertyValue,
		DownPaymentPercentage: req.DownPaymentPercentage,
		ContractYears:         req.ContractYears,
		Name:                  req.Name,
		Notes:                 req.Notes,
		Breakdown:             breakdown,
	}
	if err := h.store.CreateSimulation(sim); err != nil {
		slog.Error("Failed to create simulation", "user_id", user.ID, "error", err)
		h.writeError(w, "Failed to create simulation", http.StatusInternalServerError)
		return
	}

	slog.Info("Simulation created", "simulation_id", sim.ID, "user_id", user.ID)
	h.writeJSON(w, http.StatusCreated, toSimulationResponse(sim))
}

// GetSimulation returns a single simulation owned by the caller. Records
// owned by other users are indistinguishable from missing ones.
func (h *Handler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	sim := h.ownedSimulation(w, r, user)
	if sim == nil {
		return
	}
	h.writeJSON(w, http.StatusOK, toSimulationResponse(sim))
}

// UpdateSimulation replaces the mutable fields and recomputes the derived
// ones.
func (h *Handler) UpdateSimulation(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	sim := h.ownedSimulation(w, r, user)
	if sim == nil {
		return
	}

	var req simulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		h.writeError(w, msg, http.StatusBadRequest)
		return
	}

	breakdown, err := finance.Compute(req.PropertyValue, req.DownPaymentPercentage, req.ContractYears)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sim.PropertyValue = req.PropertyValue
	sim.DownPaymentPercentage = req.DownPaymentPercentage
	sim.ContractYears = req.ContractYears
	sim.Name = req.Name
	sim.Notes = req.Notes
	sim.Breakdown = breakdown

	if err := h.store.UpdateSimulation(sim); err != nil {
		slog.Error("Failed to update simulation", "simulation_id", sim.ID, "error", err)
		h.writeError(w, "Failed to update simulation", http.StatusInternalServerError)
		return
	}

	slog.Info("Simulation updated", "simulation_id", sim.ID, "user_id", user.ID)
	h.writeJSON(w, http.StatusOK, toSimulationResponse(sim))
}

// DeleteSimulation removes a simulation owned by the caller.
func (h *Handler) DeleteSimulation(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	sim := h.ownedSimulation(w, r, user)
	if sim == nil {
		return
	}

	if err := h.store.DeleteSimulation(sim.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.writeError(w, "Simulation not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to delete simulation", "simulation_id", sim.ID, "error", err)
		h.writeError(w, "Failed to delete simulation", http.StatusInternalServerError)
		return
	}

	slog.Info("Simulation deleted", "simulation_id", sim.ID, "user_id", user.ID)
	w.WriteHeader(http.StatusNoContent)
}

// ownedSimulation loads the path's simulation and enforces ownership,
// writing the 404 response on failure.
func (h *Handler) ownedSimulation(w http.ResponseWriter, r *http.Request, user *storage.User) *storage.Simulation {
	id := r.PathValue("id")
	sim, err := h.store.SimulationByID(id)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && sim.UserID != user.ID) {
		h.writeError(w, "Simulation not found", http.StatusNotFound)
		return nil
	}
	if err != nil {
		slog.Error("Failed to load simulation", "simulation_id", id, "error", err)
		h.writeError(w, "Internal error", http.StatusInternalServerError)
		return nil
	}
	return sim
}
