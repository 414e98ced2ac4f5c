// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing or malformed, the process
// exits with an error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AuthMode selects how credentials are verified. It is chosen once at
// startup; the mock development credential format is only recognized in
// ModeDevelopment.
type AuthMode string

const (
	ModeDevelopment AuthMode = "development"
	ModeProduction  AuthMode = "production"
)

// Config holds all runtime configuration for the placement service.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	Mode        AuthMode

	// SigningKeys maps a key id (JWT "kid" header) to its HMAC secret.
	// PrimaryKeyID names the key used for tokens that carry no kid, which
	// keeps old tokens verifiable during a rotation window.
	SigningKeys  map[string]string
	PrimaryKeyID string

	// SweepIntervalHours controls how often expired job offers are swept.
	SweepIntervalHours int
}

// Load reads environment variables and returns a validated Config.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	mode := ModeProduction
	switch env := os.Getenv("APP_ENV"); env {
	case "", "production":
	case "development":
		mode = ModeDevelopment
	default:
		return nil, fmt.Errorf("APP_ENV must be production or development, got %q", env)
	}

	keys, primary, err := parseSigningKeys(
		os.Getenv("AUTH_SIGNING_KEYS"),
		os.Getenv("AUTH_PRIMARY_KEY_ID"),
	)
	if err != nil {
		return nil, err
	}

	interval := 6
	if s := os.Getenv("SWEEP_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("SWEEP_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	port := os.Getenv("PLACEMENT_PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port:               port,
		DatabaseURL:        dbURL,
		RedisURL:           redisURL,
		Mode:               mode,
		SigningKeys:        keys,
		PrimaryKeyID:       primary,
		SweepIntervalHours: interval,
	}, nil
}

// parseSigningKeys parses "kid1:secret1,kid2:secret2" into a key map and
// resolves the primary key id. With a single key the primary may be omitted.
func parseSigningKeys(raw, primary string) (map[string]string, string, error) {
	if raw == "" {
		return nil, "", fmt.Errorf("AUTH_SIGNING_KEYS is required")
	}

	keys := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		kid, secret, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || kid == "" || secret == "" {
			return nil, "", fmt.Errorf("AUTH_SIGNING_KEYS entry %q must be kid:secret", pair)
		}
		if _, dup := keys[kid]; dup {
			return nil, "", fmt.Errorf("AUTH_SIGNING_KEYS has duplicate key id %q", kid)
		}
		keys[kid] = secret
	}

	if primary == "" {
		if len(keys) == 1 {
			for kid := range keys {
				primary = kid
			}
		} else {
			return nil, "", fmt.Errorf("AUTH_PRIMARY_KEY_ID is required when more than one signing key is configured")
		}
	}
	if _, ok := keys[primary]; !ok {
		return nil, "", fmt.Errorf("AUTH_PRIMARY_KEY_ID %q is not present in AUTH_SIGNING_KEYS", primary)
	}

	return keys, primary, nil
}
