package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	minMaxFret     = 12
	maxMaxFret     = 24
	defaultMaxFret = 22
)

// Config holds the application configuration
// Note: The engine is stateless - no database or persisted sessions
type Config struct {
	// Environment
	Environment string
	Port        string

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// Auth mode
	// - "none": No auth (self-hosted, local dev)
	// - "gateway": Trust X-User-* headers from an upstream gateway
	// - "jwt": Validate HMAC bearer tokens signed with JWTSecret
	AuthMode  string
	JWTSecret string

	// Fretboard defaults
	DefaultInstrument string // tuning preset used when a request names none
	MaxFret           int    // highest fret scanned by range lookups
}

func Load() *Config {
	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		AuthMode:          strings.ToLower(getEnv("AUTH_MODE", "none")), // Default to no auth for self-hosted
		JWTSecret:         getEnv("JWT_SECRET", ""),
		DefaultInstrument: strings.ToLower(getEnv("DEFAULT_INSTRUMENT", "guitar")),
		MaxFret:           clampFret(getEnvInt("MAX_FRET", defaultMaxFret)),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func clampFret(fret int) int {
	return max(minMaxFret, min(fret, maxMaxFret))
}

// IsGatewayMode returns true if running behind an auth gateway
func (c *Config) IsGatewayMode() bool {
	return c.AuthMode == "gateway"
}

// IsJWTMode returns true if bearer tokens are validated locally
func (c *Config) IsJWTMode() bool {
	return c.AuthMode == "jwt"
}

// IsProduction returns true in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
