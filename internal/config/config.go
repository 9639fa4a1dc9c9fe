package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingDatabaseURL is returned by Load when no connection string is configured.
var ErrMissingDatabaseURL = errors.New("config: DATABASE_URL is required")

const defaultSessionSecret = "default-secret-key-change-me"

type Config struct {
	DatabaseURL        string
	DBDriver           string
	RedisAddr          string
	SessionSecret      string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	FrontendURL        string
	GinMode            string
	Port               string
	LoginRateLimit     string
	TrustedProxies     []string
	OpenAIAPIKey       string
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// GoogleConfigured reports whether the Google OAuth client pair is present.
func (c *Config) GoogleConfigured() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// Load reads configuration from the environment and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/google/callback")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOGIN_RATE_LIMIT", "20-M")
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("OPENAI_API_KEY", "")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        v.GetString("DATABASE_URL"),
		DBDriver:           strings.ToLower(v.GetString("DB_DRIVER")),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		SessionSecret:      v.GetString("SESSION_SECRET"),
		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
		FrontendURL:        v.GetString("FRONTEND_URL"),
		GinMode:            v.GetString("GIN_MODE"),
		Port:               v.GetString("PORT"),
		LoginRateLimit:     v.GetString("LOGIN_RATE_LIMIT"),
		TrustedProxies:     splitList(v.GetString("TRUSTED_PROXIES")),
		OpenAIAPIKey:       v.GetString("OPENAI_API_KEY"),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}

	return cfg, nil
}

// Warnings lists settings that fall back to insecure or disabled behavior.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.SessionSecret == defaultSessionSecret {
		warnings = append(warnings, "SESSION_SECRET not set, using default insecure key")
	}
	if !c.GoogleConfigured() {
		warnings = append(warnings, "GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET not set, Google login disabled")
	}
	if c.OpenAIAPIKey == "" {
		warnings = append(warnings, "OPENAI_API_KEY not set, task generation disabled")
	}
	return warnings
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
