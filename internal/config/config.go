package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// OpenWeatherMap provider configuration.
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	OpenWeatherTimeout time.Duration

	// Last-city persistence. An empty RedisAddr selects the in-memory store.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string

	// Lookup event publishing, enabled when brokers are configured.
	KafkaBrokers     []string
	KafkaLookupTopic string
	KafkaEnabled     bool

	// Fallback position used for current-location lookups.
	DefaultLat         float64
	DefaultLon         float64
	DefaultLocationSet bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	owmTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("OPENWEATHER_TIMEOUT", "30s"))
	if err != nil || owmTimeout <= 0 {
		return nil, errors.New("invalid OPENWEATHER_TIMEOUT")
	}

	redisDB, err := strconv.Atoi(sharedcfg.EnvOrDefault("REDIS_DB", "0"))
	if err != nil || redisDB < 0 {
		return nil, errors.New("invalid REDIS_DB")
	}

	lat, lon, locationSet, err := parseDefaultLocation()
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL: sharedcfg.EnvOrDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		OpenWeatherTimeout: owmTimeout,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		RedisKey:      sharedcfg.EnvOrDefault("REDIS_KEY", "city-weather:last-city"),

		KafkaBrokers:     brokers,
		KafkaLookupTopic: sharedcfg.EnvOrDefault("KAFKA_LOOKUP_TOPIC", "weather-lookups"),
		KafkaEnabled:     len(brokers) > 0,

		DefaultLat:         lat,
		DefaultLon:         lon,
		DefaultLocationSet: locationSet,
	}

	if cfg.OpenWeatherAPIKey == "" {
		return nil, errors.New("OPENWEATHER_API_KEY is required")
	}
	if cfg.KafkaEnabled && cfg.KafkaLookupTopic == "" {
		return nil, errors.New("KAFKA_LOOKUP_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// parseDefaultLocation reads DEFAULT_LAT/DEFAULT_LON. Both or neither must be set.
func parseDefaultLocation() (float64, float64, bool, error) {
	latStr, lonStr := os.Getenv("DEFAULT_LAT"), os.Getenv("DEFAULT_LON")
	if latStr == "" && lonStr == "" {
		return 0, 0, false, nil
	}
	if latStr == "" || lonStr == "" {
		return 0, 0, false, errors.New("DEFAULT_LAT and DEFAULT_LON must be set together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid DEFAULT_LAT: %w", err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid DEFAULT_LON: %w", err)
	}
	return lat, lon, true, nil
}
