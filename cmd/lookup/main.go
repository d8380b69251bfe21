// Command lookup fetches current conditions once and prints the display
// projection as JSON. It reads the same environment as the service.
//
// Usage:
//
//	go run ./cmd/lookup -city "Austin, TX"
//	go run ./cmd/lookup -lat 30.2672 -lon -97.7431
//	go run ./cmd/lookup -city Austin -raw
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/city-weather-service/internal/adapter/openweather"
	"github.com/couchcryptid/city-weather-service/internal/config"
	"github.com/couchcryptid/city-weather-service/internal/domain"
	"github.com/couchcryptid/city-weather-service/internal/observability"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		var ce *domain.ClassifiedError
		if errors.As(err, &ce) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", ce.Kind, ce.Message)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run() error {
	city := flag.String("city", "", "city to look up, e.g. \"Austin\" or \"Austin, TX\"")
	lat := flag.Float64("lat", 0, "latitude (requires -lon)")
	lon := flag.Float64("lon", 0, "longitude (requires -lat)")
	raw := flag.Bool("raw", false, "print the provider payload instead of the display projection")
	flag.Parse()

	coordsSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "lat" || f.Name == "lon" {
			coordsSet = true
		}
	})
	if (*city == "") == !coordsSet {
		flag.Usage()
		return errors.New("exactly one of -city or -lat/-lon is required")
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	client := openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, cfg.OpenWeatherTimeout,
		observability.NewUnregisteredMetrics(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var payload domain.RawWeatherPayload
	if *city != "" {
		payload, err = client.FetchByCity(ctx, *city)
	} else {
		payload, err = client.FetchByCoordinates(ctx, *lat, *lon)
	}
	if err != nil {
		return err
	}

	var out any = domain.MapToDisplay(payload)
	if *raw {
		out = payload
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
