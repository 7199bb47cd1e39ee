// ABOUTME: Entry point for the Amora simulator backend service
// ABOUTME: Provides the HTTP API for accounts and saved simulations

package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/fespschulte/amora-simulator/internal/logger"
	"github.com/fespschulte/amora-simulator/internal/server/config"
	"github.com/fespschulte/amora-simulator/internal/server/handlers"
	"github.com/fespschulte/amora-simulator/internal/server/storage"
)

func main() {
	// Initialize structured logging
	logger.Init()

	// Local development settings live in .env; absence is fine.
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Amora Simulator Backend")

	// Open storage
	store, err := storage.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Database ready", "path", cfg.DatabasePath)

	if len(cfg.CORSAllowedOrigins) > 0 {
		slog.Info("CORS configured", "origins", cfg.CORSAllowedOrigins)
	} else {
		slog.Info("CORS not configured, cross-origin requests blocked")
	}

	// Initialize handlers and routes
	h := handlers.NewHandler(cfg, store)

	// Start server
	addr := ":" + cfg.Port
	slog.Info("Server listening", "addr", addr)
	if err := http.ListenAndServe(addr, h.Routes()); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
