// ABOUTME: Health check endpoint for the Amora backend
// ABOUTME: Reports service and database status

package handlers

import (
	"errors"
	"net/http"

	"github.com/fespschulte/amora-simulator/internal/server/storage"
)

// Health reports whether the service and its database are reachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"status":   "ok",
		"database": "ok",
	}
	// ErrNotFound means the query ran; anything else is a real failure.
	if _, err := h.store.UserByID("health-probe"); err != nil && !errors.Is(err, storage.ErrNotFound) {
		resp["status"] = "degraded"
		resp["database"] = "error"
	}
	h.writeJSON(w, http.StatusOK, resp)
}
