package domain

import (
	"context"
	"errors"
)

// WeatherProvider fetches current conditions from the upstream service.
// Failures are returned as *ClassifiedError.
type WeatherProvider interface {
	// FetchByCity looks up a free-text city, qualified via FormatCityQuery.
	FetchByCity(ctx context.Context, cityQuery string) (RawWeatherPayload, error)

	// FetchByCoordinates looks up a latitude/longitude pair.
	FetchByCoordinates(ctx context.Context, lat, lon float64) (RawWeatherPayload, error)
}

// LastCityStore persists the most recently searched city.
type LastCityStore interface {
	// Get returns the stored city and whether one was present.
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, city string) error
	Clear(ctx context.Context) error
}

// Locator reports the current device or host position.
type Locator interface {
	CurrentLocation(ctx context.Context) (Coordinate, error)
}

// ErrLocationUnavailable is returned by locators with nothing configured.
var ErrLocationUnavailable = errors.New("Location is not available.") //nolint:staticcheck // shown to users as-is

// StaticLocator always reports the same coordinate. The zero value has no
// position and fails with ErrLocationUnavailable.
type StaticLocator struct {
	Coord Coordinate
	Set   bool
}

// NewStaticLocator returns a locator fixed at lat/lon.
func NewStaticLocator(lat, lon float64) StaticLocator {
	return StaticLocator{Coord: Coordinate{Lat: lat, Lon: lon}, Set: true}
}

func (l StaticLocator) CurrentLocation(_ context.Context) (Coordinate, error) {
	if !l.Set {
		return Coordinate{}, ErrLocationUnavailable
	}
	return l.Coord, nil
}
