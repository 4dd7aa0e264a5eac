package config

import "strings"

// StoreBackend names a credential store implementation.
type StoreBackend string

const (
	StoreFile   StoreBackend = "file"
	StoreRedis  StoreBackend = "redis"
	StoreMemory StoreBackend = "memory"
)

// StoreConfig selects and locates the credential store.
type StoreConfig struct {
	// Backend is one of file, redis, memory.
	Backend StoreBackend `env:"PFETRACK_STORE" envDefault:"file"`

	// Path overrides the credential file location for the file backend.
	// Empty means the per-user config directory.
	Path string `env:"PFETRACK_STORE_PATH"`

	// Profile namespaces the stored session so several accounts can coexist.
	Profile string `env:"PFETRACK_PROFILE" envDefault:"default"`
}

// Sanitize normalises store selection values.
func (s *StoreConfig) Sanitize() {
	s.Backend = StoreBackend(strings.ToLower(strings.TrimSpace(string(s.Backend))))
	if s.Backend == "" {
		s.Backend = StoreFile
	}
	s.Path = strings.TrimSpace(s.Path)
	s.Profile = strings.TrimSpace(s.Profile)
	if s.Profile == "" {
		s.Profile = "default"
	}
}

// RedisConfig locates the Redis server used by the redis store backend.
// URI is either a redis:// / rediss:// URL or a plain host:port; URL
// credentials and database win over Password and DB.
type RedisConfig struct {
	URI      string `env:"URI"      envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// Sanitize trims the address and clamps a negative database index.
func (r *RedisConfig) Sanitize() {
	r.URI = strings.TrimSpace(r.URI)
	if r.DB < 0 {
		r.DB = 0
	}
}
