package redis

// Package redis provides Redis-based adapters for the pfetrack client.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	domainauth "github.com/3issane/PFETRACKCODE212/internal/domain/auth"
	"github.com/3issane/PFETRACKCODE212/internal/ports"
	"github.com/3issane/PFETRACKCODE212/internal/tokens"
	"github.com/redis/go-redis/v9"
)

var _ ports.CredentialStore = (*CredentialStore)(nil)

const defaultPrefix = "pfetrack:"

// CredentialStore is a Redis-based credential store for shared or multi-process clients.
// Both slots are written in one MULTI/EXEC so readers never observe a token without its user.
type CredentialStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewCredentialStore creates a store whose keys live under "pfetrack:{<profile>}:".
// The hash tag keeps both keys in one cluster slot so MULTI/EXEC and DEL stay valid.
func NewCredentialStore(client redis.UniversalClient, profile string) *CredentialStore {
	return NewCredentialStoreWithPrefix(client, defaultPrefix+"{"+profileOrDefault(profile)+"}:")
}

// NewCredentialStoreWithPrefix creates a store with a custom key prefix.
func NewCredentialStoreWithPrefix(client redis.UniversalClient, prefix string) *CredentialStore {
	return &CredentialStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

func profileOrDefault(profile string) string {
	if p := strings.TrimSpace(profile); p != "" {
		return p
	}
	return "default"
}

func (s *CredentialStore) tokenKey() string { return s.prefix + "token" }
func (s *CredentialStore) userKey() string  { return s.prefix + "user" }

func (s *CredentialStore) ReadToken(ctx context.Context) (string, error) {
	token, err := s.client.Get(ctx, s.tokenKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get token: %w", err)
	}
	return token, nil
}

func (s *CredentialStore) ReadUser(ctx context.Context) (*domainauth.UserIdentity, error) {
	data, err := s.client.Get(ctx, s.userKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get user: %w", err)
	}

	var user domainauth.UserIdentity
	if unmarshalErr := json.Unmarshal(data, &user); unmarshalErr != nil {
		return nil, nil //nolint:nilerr // unparseable records read as absent
	}
	return &user, nil
}

// WriteSession stores both slots. When the token is a JWT with an exp claim the
// keys expire with it; otherwise they persist until cleared.
func (s *CredentialStore) WriteSession(ctx context.Context, token string, user domainauth.UserIdentity) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	var ttl time.Duration
	if exp, ok := tokens.Expiry(token); ok {
		ttl = exp.Sub(s.now())
		if ttl <= 0 {
			// Token is already expired, don't save it
			return errors.New("token is expired")
		}
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.tokenKey(), token, ttl)
		pipe.Set(ctx, s.userKey(), data, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis write session: %w", err)
	}
	return nil
}

func (s *CredentialStore) ClearSession(ctx context.Context) error {
	if err := s.client.Del(ctx, s.tokenKey(), s.userKey()).Err(); err != nil {
		return fmt.Errorf("redis clear session: %w", err)
	}
	return nil
}
