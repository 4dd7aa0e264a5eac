package config

import (
	"strings"
	"time"
)

const (
	// DefaultAPIBaseURL is the backend root used when PFETRACK_API_BASE_URL is unset.
	DefaultAPIBaseURL = "http://localhost:8080/api"

	minAPITimeout = time.Second
)

// APIConfig contains backend API client configuration.
type APIConfig struct {
	// BaseURL is the backend API root, including the /api prefix.
	BaseURL string `env:"PFETRACK_API_BASE_URL" envDefault:"http://localhost:8080/api"`

	// Timeout bounds every backend round trip.
	Timeout time.Duration `env:"PFETRACK_API_TIMEOUT" envDefault:"30s"`

	// RateLimit is the client-side request budget per second. Zero disables limiting.
	RateLimit float64 `env:"PFETRACK_API_RATE_LIMIT" envDefault:"0"`

	// RateBurst is the limiter burst size.
	RateBurst int `env:"PFETRACK_API_RATE_BURST" envDefault:"5"`
}

// Sanitize applies guardrails to API client configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	if a.BaseURL == "" {
		a.BaseURL = DefaultAPIBaseURL
	}
	if a.Timeout < minAPITimeout {
		a.Timeout = minAPITimeout
	}
	if a.RateLimit < 0 {
		a.RateLimit = 0
	}
	if a.RateBurst < 1 {
		a.RateBurst = 1
	}
}
