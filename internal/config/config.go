package config

type Config interface {
	EnvConfig
	BackendConfig
	CookieConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

// BackendConfig locates the external identity service.
type BackendConfig interface {
	GetBackendBaseURL() string
}

// CookieConfig names the two session cookies.
type CookieConfig interface {
	GetAccessCookieName() string
	GetRefreshCookieName() string
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
