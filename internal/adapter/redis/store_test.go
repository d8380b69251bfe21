package redis

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/city-weather-service/internal/domain"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ domain.LastCityStore = (*LastCityStore)(nil)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// unreachableStore points at a port nothing listens on.
func unreachableStore(t *testing.T) *LastCityStore {
	t.Helper()
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return newLastCityStore(client, "test:last-city", discardLogger())
}

func TestLastCityStore_ErrorsAreWrapped(t *testing.T) {
	s := unreachableStore(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "redis get test:last-city")

	err = s.Set(ctx, "Austin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis set test:last-city")

	err = s.Clear(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis del test:last-city")

	assert.Error(t, s.Ping(ctx))
}

func TestNewLastCityStore_ConnectFailure(t *testing.T) {
	_, err := NewLastCityStore("127.0.0.1:1", "", 0, "test:last-city", discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to redis")
}
