package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "BOT_PORT", "API_BASE_URL", "REQUEST_TIMEOUT_SECONDS", "REQUIRED_ROLE_IDS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "8090", cfg.BotPort)
	require.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
	require.Nil(t, cfg.RequiredRoleIDs)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/board")
	t.Setenv("REQUIRED_ROLE_IDS", "r1, r2 ,,r3")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "30")
	t.Setenv("APP_DEBUG", "true")

	cfg := Load()

	require.Equal(t, "postgres://u:p@db:5432/board", cfg.DatabaseURL)
	require.Equal(t, []string{"r1", "r2", "r3"}, cfg.RequiredRoleIDs)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.True(t, cfg.Debug)
}

func TestLoad_BadTimeoutFallsBack(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "zero")
	require.Equal(t, 15*time.Second, Load().RequestTimeout)

	t.Setenv("REQUEST_TIMEOUT_SECONDS", "-3")
	require.Equal(t, 15*time.Second, Load().RequestTimeout)
}
