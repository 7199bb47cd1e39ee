// ABOUTME: Route registration for the Amora simulator API
// ABOUTME: Wires handlers to their paths with logging, CORS and auth middleware

package handlers

import (
	"net/http"

	"github.com/fespschulte/amora-simulator/internal/server/middleware"
)

// Routes builds the API mux. Auth endpoints for login, register and logout
// are public; profile and simulation endpoints require a bearer token.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	public := func(fn http.HandlerFunc) http.HandlerFunc {
		return middleware.Chain(fn,
			middleware.LogRequest,
			middleware.CORS(h.cfg.CORSAllowedOrigins),
		)
	}
	authed := func(fn http.HandlerFunc) http.HandlerFunc {
		return middleware.Chain(fn,
			middleware.LogRequest,
			middleware.CORS(h.cfg.CORSAllowedOrigins),
			middleware.RequireAuth(h.cfg.JWTSecret),
		)
	}

	mux.HandleFunc("GET /api/health", public(h.Health))

	mux.HandleFunc("POST /api/auth/register", public(h.Register))
	mux.HandleFunc("POST /api/auth/login", public(h.Login))
	mux.HandleFunc("POST /api/auth/logout", public(h.Logout))
	mux.HandleFunc("GET /api/auth/me", authed(h.Me))
	mux.HandleFunc("PUT /api/auth/me", authed(h.UpdateMe))

	mux.HandleFunc("GET /api/simulations", authed(h.ListSimulations))
	mux.HandleFunc("POST /api/simulations", authed(h.CreateSimulation))
	mux.HandleFunc("GET /api/simulations/{id}", authed(h.GetSimulation))
	mux.HandleFunc("PUT /api/simulations/{id}", authed(h.UpdateSimulation))
	mux.HandleFunc("DELETE /api/simulations/{id}", authed(h.DeleteSimulation))

	// Preflight for routes that carry the Authorization header. The CORS
	// middleware answers OPTIONS before auth runs.
	mux.HandleFunc("OPTIONS /api/", public(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	return mux
}
