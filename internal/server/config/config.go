// ABOUTME: Configuration loader for the Amora backend service
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port               string
	DatabasePath       string
	JWTSecret          string
	TokenTTLMinutes    int      // access token lifetime (default 60)
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8000"),
		DatabasePath:       getEnv("DATABASE_PATH", "amora.db"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenTTLMinutes:    getEnvInt("TOKEN_TTL_MINUTES", 60),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.TokenTTLMinutes < 1 {
		return nil, fmt.Errorf("TOKEN_TTL_MINUTES must be positive, got %d", cfg.TokenTTLMinutes)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
