// Package config handles loading and validating runtime configuration for the league API.
// Configuration values (like the database URL and API port) are read from environment
// variables rather than being hardcoded, so the same binary runs in dev, staging, and
// production — just swap the environment variables.
package config

import (
	"os"
	"strings"

	// godotenv reads a .env file and loads its key=value pairs into the process
	// environment. Convenient in development; in production, real env vars are used.
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values for the application.
type Config struct {
	Port        string // The TCP port the HTTP server listens on (e.g., "8080")
	DatabaseURL string // PostgreSQL connection string
	Env         string // "development", "staging", or "production"

	// ExternalAPIKeys are the accepted keys for the read-only external
	// analytics API (X-API-Key header). Comma-separated in EXTERNAL_API_KEYS.
	ExternalAPIKeys []string

	// AuthSecretKey verifies bearer tokens on the /api/v1 surface once
	// signature verification is wired in (see middleware.Auth).
	AuthSecretKey string
}

// Load reads configuration from environment variables and returns a populated Config.
// It first tries a .env file for local development; a missing .env is fine — the
// deployment platform sets real environment variables in production.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENV")
	if env == "" {
		// Default to "development" so local runs don't accidentally behave like production
		env = "development"
	}

	return &Config{
		Port:            port,
		DatabaseURL:     os.Getenv("DATABASE_URL"), // Required — server fails to start without it
		Env:             env,
		ExternalAPIKeys: splitKeys(os.Getenv("EXTERNAL_API_KEYS")),
		AuthSecretKey:   os.Getenv("AUTH_SECRET_KEY"),
	}
}

// splitKeys parses a comma-separated key list, dropping empty entries so a
// trailing comma doesn't become a valid empty key.
func splitKeys(raw string) []string {
	keys := []string{}
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
