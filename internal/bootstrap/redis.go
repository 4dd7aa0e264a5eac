package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/3issane/PFETRACKCODE212/config"
)

const redisPingTimeout = 5 * time.Second

// RedisOptions contains configuration for the Redis connection.
type RedisOptions struct {
	Config config.RedisConfig
	Logger *slog.Logger
}

// ConnectRedis opens a client for the credential store and checks it answers.
// The client is closed again when the ping fails.
func ConnectRedis(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	clientOpts, err := redisClientOptions(opts.Config)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(clientOpts)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if pingErr := client.Ping(pingCtx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis at %s: %w", clientOpts.Addr, pingErr)
	}

	if opts.Logger != nil {
		// Addr never carries credentials, unlike the configured URI.
		opts.Logger.Info("redis connected", "addr", clientOpts.Addr, "db", clientOpts.DB, "tls", clientOpts.TLSConfig != nil)
	}
	return client, nil
}

// redisClientOptions turns the configured URI into client options. A
// redis:// or rediss:// URL is parsed as-is; anything else is a host:port
// combined with Password and DB.
func redisClientOptions(cfg config.RedisConfig) (*redis.Options, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, errors.New("redis store requires REDIS_URI")
	}

	if !strings.HasPrefix(uri, "redis://") && !strings.HasPrefix(uri, "rediss://") {
		return &redis.Options{Addr: uri, Password: cfg.Password, DB: cfg.DB}, nil
	}

	opts, err := redis.ParseURL(uri)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.Password == "" {
		opts.Password = cfg.Password
	}
	return opts, nil
}
