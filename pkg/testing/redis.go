// Package testing holds helpers for tests that need live backends.
package testing

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

// RedisClient connects to FITSUGGEST_TEST_REDIS (host:port, default
// localhost:6379) and flushes the test database when the test ends.
func RedisClient(t *testing.T) (context.Context, *redis.Client) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	addr := os.Getenv("FITSUGGEST_TEST_REDIS")
	if addr == "" {
		addr = net.JoinHostPort("localhost", "6379")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("FITSUGGEST_TEST_REDIS_PASS"),
		DB:       15,
	})
	require.NoError(t, rdb.Ping(ctx).Err(), "redis at %s", addr)

	t.Cleanup(func() {
		_ = rdb.FlushDB(context.Background()).Err()
		_ = rdb.Close()
	})

	return ctx, rdb
}
