package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	portEnvVar          = "PORT"
	appNameVar          = "APP_NAME"
	backendURLVar       = "BACKEND_URL"
	accessCookieEnvVar  = "ACCESS_COOKIE_NAME"
	refreshCookieEnvVar = "REFRESH_COOKIE_NAME"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}
var _ BackendConfig = EnvVars{}
var _ CookieConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "3000")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Auth Frontend")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetBackendBaseURL returns the base URL of the identity backend
// (e.g., "https://api.example.com"). Read once at process start.
func (EnvVars) GetBackendBaseURL() string {
	return GetEnv(backendURLVar, "http://localhost:8000")
}

func (EnvVars) GetAccessCookieName() string {
	return GetEnv(accessCookieEnvVar, "accessToken")
}

func (EnvVars) GetRefreshCookieName() string {
	return GetEnv(refreshCookieEnvVar, "refreshToken")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
