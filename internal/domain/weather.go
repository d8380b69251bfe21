package domain

import "time"

// RawWeatherPayload is the current-weather response as returned by the provider.
type RawWeatherPayload struct {
	Coord      Coordinate  `json:"coord"`
	Weather    []Condition `json:"weather"`
	Base       string      `json:"base,omitempty"`
	Main       MainMetrics `json:"main"`
	Visibility int         `json:"visibility"` // meters
	Wind       Wind        `json:"wind"`
	Clouds     Clouds      `json:"clouds"`
	Dt         int64       `json:"dt"`
	Sys        Sys         `json:"sys"`
	Timezone   int         `json:"timezone"` // seconds east of UTC
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Cod        int         `json:"cod"`
}

// Coordinate is a WGS-84 latitude/longitude pair. Ranges are not validated here.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Condition is one entry of the provider's "weather" list.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// MainMetrics holds temperature (°F with imperial units), pressure and humidity.
type MainMetrics struct {
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feels_like"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Pressure    int     `json:"pressure"`
	Humidity    int     `json:"humidity"`
	SeaLevel    *int    `json:"sea_level,omitempty"`
	GroundLevel *int    `json:"grnd_level,omitempty"`
}

// Wind speed is in mph with imperial units; Deg is meteorological degrees.
type Wind struct {
	Speed float64  `json:"speed"`
	Deg   int      `json:"deg"`
	Gust  *float64 `json:"gust,omitempty"`
}

// Clouds carries cloudiness as a percentage.
type Clouds struct {
	All int `json:"all"`
}

// Sys holds country and solar times (Unix seconds, UTC).
type Sys struct {
	Type    *int   `json:"type,omitempty"`
	ID      *int   `json:"id,omitempty"`
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

// DisplayWeather is the presentation-ready projection of a payload.
// Every measurement is pre-formatted with its unit.
type DisplayWeather struct {
	CityName      string `json:"city_name"`
	Country       string `json:"country"`
	Temperature   string `json:"temperature"`
	FeelsLike     string `json:"feels_like"`
	TempMin       string `json:"temp_min"`
	TempMax       string `json:"temp_max"`
	Description   string `json:"description"`
	MainCondition string `json:"main_condition"`
	IconURL       string `json:"icon_url"`
	Humidity      string `json:"humidity"`
	Pressure      string `json:"pressure"`
	WindSpeed     string `json:"wind_speed"`
	WindDirection string `json:"wind_direction"`
	Visibility    string `json:"visibility"`
	Cloudiness    string `json:"cloudiness"`
	Sunrise       string `json:"sunrise"`
	Sunset        string `json:"sunset"`
	LastUpdated   string `json:"last_updated"`
}

// LookupEvent records one successful lookup for downstream consumers.
type LookupEvent struct {
	Kind       string         `json:"kind"` // "city", "coordinates", or "location"
	Query      string         `json:"query,omitempty"`
	CityID     int64          `json:"city_id"`
	Coord      Coordinate     `json:"coord"`
	Display    DisplayWeather `json:"display"`
	LookedUpAt time.Time      `json:"looked_up_at"`
}

// Lookup kinds recorded on LookupEvent.
const (
	LookupByCity        = "city"
	LookupByCoordinates = "coordinates"
	LookupByLocation    = "location"
)

// NewLookupEvent stamps a lookup with the package clock.
func NewLookupEvent(kind, query string, payload RawWeatherPayload, display DisplayWeather) LookupEvent {
	return LookupEvent{
		Kind:       kind,
		Query:      query,
		CityID:     payload.ID,
		Coord:      payload.Coord,
		Display:    display,
		LookedUpAt: clock.Now().UTC(),
	}
}
