package config_test

import (
	"testing"

	"github.com/Ezzedini-Yassine/frontdbforet/internal/config"
	"github.com/stretchr/testify/require"
)

func TestGetPortDefaultsAndPrefixes(t *testing.T) {
	c := config.New()

	t.Setenv("PORT", "")
	require.Equal(t, ":3000", c.GetPort())

	t.Setenv("PORT", "8080")
	require.Equal(t, ":8080", c.GetPort())

	t.Setenv("PORT", ":9090")
	require.Equal(t, ":9090", c.GetPort())
}

func TestDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("APP_NAME", "")
	t.Setenv("BACKEND_URL", "")
	t.Setenv("ACCESS_COOKIE_NAME", "")
	t.Setenv("REFRESH_COOKIE_NAME", "")

	c := config.New()
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "Auth Frontend", c.GetAppName())
	require.Equal(t, "http://localhost:8000", c.GetBackendBaseURL())
	require.Equal(t, "accessToken", c.GetAccessCookieName())
	require.Equal(t, "refreshToken", c.GetRefreshCookieName())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ENV", "PROD")
	t.Setenv("BACKEND_URL", "https://id.example.com")
	t.Setenv("ACCESS_COOKIE_NAME", "at")
	t.Setenv("REFRESH_COOKIE_NAME", "rt")

	c := config.New()
	require.Equal(t, "PROD", c.GetEnv())
	require.Equal(t, "https://id.example.com", c.GetBackendBaseURL())
	require.Equal(t, "at", c.GetAccessCookieName())
	require.Equal(t, "rt", c.GetRefreshCookieName())
}
