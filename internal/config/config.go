package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application. It is built
// once at startup and passed by reference; nothing reads the environment
// after Load returns.
type Config struct {
	Port           string
	AllowedOrigins []string
	GoogleClientID string
	JWTSecret      string
	LogLevel       string
	DatabaseURL    string
	Environment    string

	// Session token policy. Fixed values, kept on the struct so every
	// component receives them from the same place.
	TokenTTL         time.Duration
	RefreshThreshold time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "3001"),
		AllowedOrigins:   parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")),
		GoogleClientID:   getEnv("GOOGLE_CLIENT_ID", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		Environment:      getEnv("ENVIRONMENT", "production"),
		TokenTTL:         7 * 24 * time.Hour,
		RefreshThreshold: 24 * time.Hour,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate ensures required configuration is present before the process
// starts serving; a missing signing secret or client ID cannot be recovered
// from at request time.
func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("missing JWT_SECRET configuration")
	}
	if c.GoogleClientID == "" {
		return fmt.Errorf("missing GOOGLE_CLIENT_ID configuration")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("missing DATABASE_URL configuration")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// parseOrigins parses comma-separated origins into a slice
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
