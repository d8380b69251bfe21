package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// LastCityStore persists the last searched city under a single Redis key.
// It implements domain.LastCityStore.
type LastCityStore struct {
	client *goredis.Client
	key    string
	logger *slog.Logger
}

// NewLastCityStore connects to Redis and verifies the connection with PING.
func NewLastCityStore(addr, password string, db int, key string, logger *slog.Logger) (*LastCityStore, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	logger.Info("connected to redis", "addr", addr, "db", db)
	return newLastCityStore(client, key, logger), nil
}

func newLastCityStore(client *goredis.Client, key string, logger *slog.Logger) *LastCityStore {
	return &LastCityStore{client: client, key: key, logger: logger}
}

// Get returns the stored city. A missing key is not an error.
func (s *LastCityStore) Get(ctx context.Context) (string, bool, error) {
	city, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return city, true, nil
}

func (s *LastCityStore) Set(ctx context.Context, city string) error {
	if err := s.client.Set(ctx, s.key, city, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	s.logger.Debug("last city saved", "city", city)
	return nil
}

func (s *LastCityStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", s.key, err)
	}
	s.logger.Debug("last city cleared")
	return nil
}

// Ping reports whether Redis is reachable.
func (s *LastCityStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *LastCityStore) Close() error {
	return s.client.Close()
}
