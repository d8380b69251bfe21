package lookup

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/couchcryptid/city-weather-service/internal/domain"
	"github.com/couchcryptid/city-weather-service/internal/observability"
)

var (
	// ErrEmptyQuery is returned when a city search has no text.
	ErrEmptyQuery = errors.New("city query is empty")

	// ErrNoInitialLocation is returned by LoadInitial when there is no saved
	// city and no locator to fall back on.
	ErrNoInitialLocation = errors.New("no saved city and no location available")
)

// Publisher emits lookup events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event domain.LookupEvent) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Service runs weather lookups: fetch, map for display, remember the city,
// and publish an event. Each call is independent; the service holds no
// per-lookup state.
type Service struct {
	provider  domain.WeatherProvider
	store     domain.LastCityStore
	locator   domain.Locator
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Service. locator and publisher may be nil.
func New(provider domain.WeatherProvider, store domain.LastCityStore, locator domain.Locator, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		provider:  provider,
		store:     store,
		locator:   locator,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// SearchCity fetches conditions for a free-text city and saves the query as the last city.
func (s *Service) SearchCity(ctx context.Context, query string) (domain.DisplayWeather, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.DisplayWeather{}, ErrEmptyQuery
	}

	payload, err := s.provider.FetchByCity(ctx, query)
	if err != nil {
		s.recordFailure(domain.LookupByCity, err)
		return domain.DisplayWeather{}, err
	}

	display := domain.MapToDisplay(payload)
	s.rememberCity(ctx, query)
	s.publish(ctx, domain.NewLookupEvent(domain.LookupByCity, query, payload, display))
	s.metrics.Lookups.WithLabelValues(domain.LookupByCity, "success").Inc()
	return display, nil
}

// SearchCoordinates fetches conditions for a coordinate pair and saves the
// resolved city name as the last city.
func (s *Service) SearchCoordinates(ctx context.Context, lat, lon float64) (domain.DisplayWeather, error) {
	return s.searchCoordinates(ctx, domain.LookupByCoordinates, domain.Coordinate{Lat: lat, Lon: lon})
}

// SearchCurrentLocation asks the locator for a position and looks it up.
// Locator failures surface as LocationError.
func (s *Service) SearchCurrentLocation(ctx context.Context) (domain.DisplayWeather, error) {
	if s.locator == nil {
		err := domain.LocationError(domain.ErrLocationUnavailable)
		s.recordFailure(domain.LookupByLocation, err)
		return domain.DisplayWeather{}, err
	}

	coord, err := s.locator.CurrentLocation(ctx)
	if err != nil {
		lerr := domain.LocationError(err)
		s.recordFailure(domain.LookupByLocation, lerr)
		return domain.DisplayWeather{}, lerr
	}

	return s.searchCoordinates(ctx, domain.LookupByLocation, coord)
}

// LoadInitial restores the startup view: the saved city when there is one,
// otherwise the current location.
func (s *Service) LoadInitial(ctx context.Context) (domain.DisplayWeather, error) {
	city, ok, err := s.store.Get(ctx)
	if err != nil {
		s.logger.Warn("read last city failed", "error", err)
		s.metrics.LastCityErrors.WithLabelValues("get").Inc()
	}
	if ok && strings.TrimSpace(city) != "" {
		return s.SearchCity(ctx, city)
	}
	if s.locator == nil {
		return domain.DisplayWeather{}, ErrNoInitialLocation
	}
	return s.SearchCurrentLocation(ctx)
}

// LastCity returns the saved city, if any.
func (s *Service) LastCity(ctx context.Context) (string, bool, error) {
	return s.store.Get(ctx)
}

// ClearLastCity forgets the saved city.
func (s *Service) ClearLastCity(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("clear last city failed", "error", err)
		s.metrics.LastCityErrors.WithLabelValues("clear").Inc()
		return err
	}
	return nil
}

// CheckReadiness pings the last-city store when it supports it.
func (s *Service) CheckReadiness(ctx context.Context) error {
	if p, ok := s.store.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *Service) searchCoordinates(ctx context.Context, kind string, coord domain.Coordinate) (domain.DisplayWeather, error) {
	payload, err := s.provider.FetchByCoordinates(ctx, coord.Lat, coord.Lon)
	if err != nil {
		s.recordFailure(kind, err)
		return domain.DisplayWeather{}, err
	}

	display := domain.MapToDisplay(payload)
	if payload.Name != "" {
		s.rememberCity(ctx, payload.Name)
	}
	s.publish(ctx, domain.NewLookupEvent(kind, "", payload, display))
	s.metrics.Lookups.WithLabelValues(kind, "success").Inc()
	return display, nil
}

// rememberCity saves the city; failures are logged, not returned.
func (s *Service) rememberCity(ctx context.Context, city string) {
	if err := s.store.Set(ctx, city); err != nil {
		s.logger.Warn("save last city failed", "city", city, "error", err)
		s.metrics.LastCityErrors.WithLabelValues("set").Inc()
	}
}

func (s *Service) publish(ctx context.Context, event domain.LookupEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish lookup event failed", "kind", event.Kind, "city_id", event.CityID, "error", err)
		s.metrics.EventPublishErrs.Inc()
		return
	}
	s.metrics.EventsPublished.Inc()
}

func (s *Service) recordFailure(kind string, err error) {
	s.metrics.Lookups.WithLabelValues(kind, "error").Inc()
	s.logger.Info("lookup failed", "kind", kind, "error_kind", domain.KindOf(err).String())
}
