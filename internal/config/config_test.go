package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.ErrorIs(t, err, ErrMissingDatabaseURL)
	require.Nil(t, cfg)
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/board")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("GOOGLE_CLIENT_ID", "client")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("SESSION_SECRET", "s3cr3t")
	t.Setenv("GIN_MODE", "release")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres://u:p@localhost:5432/board", cfg.DatabaseURL)
	require.Equal(t, "mysql", cfg.DBDriver)
	require.Equal(t, "8080", cfg.Port)
	require.True(t, cfg.GoogleConfigured())
	require.True(t, cfg.IsProduction())
	require.Nil(t, cfg.TrustedProxies)
}

func TestLoad_TrustedProxies(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/board")
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.0/8, ,192.168.1.1 ")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.TrustedProxies)
}

func TestConfig_Warnings(t *testing.T) {
	cfg := &Config{SessionSecret: defaultSessionSecret}
	require.Len(t, cfg.Warnings(), 3)

	cfg = &Config{
		SessionSecret:      "x",
		GoogleClientID:     "id",
		GoogleClientSecret: "secret",
		OpenAIAPIKey:       "key",
	}
	require.Empty(t, cfg.Warnings())
}
