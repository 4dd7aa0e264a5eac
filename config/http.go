package config

import (
	"strings"
	"time"
)

// HTTPConfig contains local web front configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to. Loopback by default since
	// the front acts on the locally stored session.
	Addr string `env:"HTTP_ADDR" envDefault:"127.0.0.1:3000"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.Addr = strings.TrimSpace(h.Addr)
	if h.Addr == "" {
		h.Addr = "127.0.0.1:3000"
	}
	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10 * time.Second
	}
}
