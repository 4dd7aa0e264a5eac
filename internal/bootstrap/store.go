package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/3issane/PFETRACKCODE212/config"
	"github.com/3issane/PFETRACKCODE212/internal/adapters/filestore"
	"github.com/3issane/PFETRACKCODE212/internal/adapters/memstore"
	redisstore "github.com/3issane/PFETRACKCODE212/internal/adapters/redis"
	"github.com/3issane/PFETRACKCODE212/internal/ports"
)

// StoreOptions contains configuration for credential store selection.
type StoreOptions struct {
	Store  config.StoreConfig
	Redis  config.RedisConfig
	Logger *slog.Logger
}

// NewCredentialStore builds the configured credential store. The returned
// closer releases backend connections and is never nil.
//
//nolint:ireturn // the backend is chosen at runtime.
func NewCredentialStore(opts StoreOptions) (ports.CredentialStore, func() error, error) {
	noop := func() error { return nil }
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch opts.Store.Backend {
	case config.StoreFile, "":
		path := opts.Store.Path
		if path == "" {
			def, err := filestore.DefaultPath(opts.Store.Profile)
			if err != nil {
				return nil, noop, err
			}
			path = def
		}
		store, err := filestore.New(path)
		if err != nil {
			return nil, noop, fmt.Errorf("create file store: %w", err)
		}
		logger.Debug("credential store ready", "backend", "file", "path", store.Path())
		return store, noop, nil

	case config.StoreRedis:
		client, err := ConnectRedis(context.Background(), RedisOptions{Config: opts.Redis, Logger: logger})
		if err != nil {
			return nil, noop, fmt.Errorf("connect credential store: %w", err)
		}
		logger.Debug("credential store ready", "backend", "redis", "profile", opts.Store.Profile)
		return redisstore.NewCredentialStore(client, opts.Store.Profile), client.Close, nil

	case config.StoreMemory:
		logger.Debug("credential store ready", "backend", "memory")
		return memstore.New(), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown credential store backend %q", opts.Store.Backend)
	}
}
