package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/city-weather-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/city-weather-service/internal/adapter/kafka"
	"github.com/couchcryptid/city-weather-service/internal/adapter/memory"
	"github.com/couchcryptid/city-weather-service/internal/adapter/openweather"
	redisadapter "github.com/couchcryptid/city-weather-service/internal/adapter/redis"
	"github.com/couchcryptid/city-weather-service/internal/config"
	"github.com/couchcryptid/city-weather-service/internal/domain"
	"github.com/couchcryptid/city-weather-service/internal/lookup"
	"github.com/couchcryptid/city-weather-service/internal/observability"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, cfg.OpenWeatherTimeout, metrics, logger)

	// Last-city store: Redis when configured, otherwise process memory.
	var store domain.LastCityStore
	var redisStore *redisadapter.LastCityStore
	if cfg.RedisAddr != "" {
		redisStore, err = redisadapter.NewLastCityStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisKey, logger)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		store = redisStore
	} else {
		store = memory.NewLastCityStore()
		logger.Info("using in-memory last-city store")
	}

	var locator domain.Locator
	if cfg.DefaultLocationSet {
		locator = domain.NewStaticLocator(cfg.DefaultLat, cfg.DefaultLon)
		logger.Info("default location configured", "lat", cfg.DefaultLat, "lon", cfg.DefaultLon)
	}

	// Lookup events are feature-flagged via KAFKA_BROKERS.
	var publisher lookup.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		metrics.PublisherEnabled.Set(1)
		logger.Info("lookup event publishing enabled", "topic", cfg.KafkaLookupTopic)
	} else {
		logger.Info("lookup event publishing disabled")
	}

	svc := lookup.New(client, store, locator, publisher, logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	if redisStore != nil {
		if err := redisStore.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
