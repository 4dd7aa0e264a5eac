// Package testutil provides testing utilities for the pfetrack client.
package testutil

import (
	"context"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisAddr = "localhost:6379"
	// defaultRedisDB keeps credential-store tests away from a developer's DB 0.
	defaultRedisDB = 15
)

// FixedTimeFunc returns a clock that always reports t.
func FixedTimeFunc(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// TestTime is the reference instant for clock-dependent tests.
func TestTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// SetupTestRedis connects to the Redis named by TEST_REDIS_ADDR (or REDIS_ADDR,
// else localhost:6379), database TEST_REDIS_DB (default 15), and empties it.
// The test is skipped when Redis does not answer, unless TEST_REQUIRE_REDIS is set.
// The database is flushed again and the client closed when the test ends.
func SetupTestRedis(tb testing.TB) *redis.Client {
	tb.Helper()

	addr := firstNonEmpty(os.Getenv("TEST_REDIS_ADDR"), os.Getenv("REDIS_ADDR"), defaultRedisAddr)
	db := defaultRedisDB
	if v := strings.TrimSpace(os.Getenv("TEST_REDIS_DB")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			tb.Fatalf("invalid TEST_REDIS_DB=%q", v)
		}
		db = n
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if truthy(os.Getenv("TEST_REQUIRE_REDIS")) {
			tb.Fatalf("redis required but not available at %s: %v", addr, err)
		}
		tb.Skipf("redis not available at %s: %v", addr, err)
	}
	if err := client.FlushDB(ctx).Err(); err != nil {
		_ = client.Close()
		tb.Fatalf("flush redis db %d: %v", db, err)
	}

	tb.Cleanup(func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer flushCancel()
		if err := client.FlushDB(flushCtx).Err(); err != nil {
			tb.Logf("flush redis db %d: %v", db, err)
		}
		_ = client.Close()
	})
	return client
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}
