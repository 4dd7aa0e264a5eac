package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: backend API client configuration
//   - store.go: credential store and Redis configuration
//   - http.go: local web front configuration
type AppConfig struct {
	// IsDev controls development mode behavior (text logs at debug level).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Backend API client configuration
	API APIConfig

	// Credential store configuration
	Store StoreConfig
	Redis RedisConfig `envPrefix:"REDIS_"`

	// Session behavior
	Session SessionConfig

	// Local web front configuration
	HTTP HTTPConfig

	// Logging configuration
	Log LogConfig
}

// SessionConfig controls session manager and route guard behavior.
type SessionConfig struct {
	// LogoutOnUnauthorized ends the session when an authenticated backend call returns 401.
	LogoutOnUnauthorized bool `env:"PFETRACK_LOGOUT_ON_UNAUTHORIZED" envDefault:"false"`

	// LoginPath is where the route guard sends signed-out users.
	LoginPath string `env:"PFETRACK_LOGIN_PATH" envDefault:"/login"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	s.LoginPath = strings.TrimSpace(s.LoginPath)
	if s.LoginPath == "" || !strings.HasPrefix(s.LoginPath, "/") {
		s.LoginPath = "/login"
	}
}

// LogConfig controls the process-wide slog handler.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Sanitize normalises log settings. Unknown formats fall back to JSON.
func (l *LogConfig) Sanitize() {
	l.Level = strings.ToLower(strings.TrimSpace(l.Level))
	l.Format = strings.ToLower(strings.TrimSpace(l.Format))
	if l.Format != "text" {
		l.Format = "json"
	}
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Store.Sanitize()
	c.Redis.Sanitize()
	c.Session.Sanitize()
	c.HTTP.Sanitize()
	c.Log.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
