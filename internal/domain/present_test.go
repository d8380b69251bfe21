package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

const austinOffset = -21600 // UTC-6

func austinPayload() RawWeatherPayload {
	seaLevel := 1013
	gust := 18.4
	return RawWeatherPayload{
		Coord: Coordinate{Lat: 30.2672, Lon: -97.7431},
		Weather: []Condition{
			{ID: 802, Main: "Clouds", Description: "scattered clouds", Icon: "03d"},
		},
		Main: MainMetrics{
			Temp:      75.4,
			FeelsLike: 77.8,
			TempMin:   72.5,
			TempMax:   80.9,
			Pressure:  1015,
			Humidity:  65,
			SeaLevel:  &seaLevel,
		},
		Visibility: 16093,
		Wind:       Wind{Speed: 9.6, Deg: 315, Gust: &gust},
		Clouds:     Clouds{All: 40},
		Dt:         time.Date(2024, 6, 4, 20, 5, 0, 0, time.UTC).Unix(),
		Sys: Sys{
			Country: "US",
			Sunrise: time.Date(2024, 6, 4, 11, 30, 0, 0, time.UTC).Unix(),
			Sunset:  time.Date(2024, 6, 5, 1, 35, 0, 0, time.UTC).Unix(),
		},
		Timezone: austinOffset,
		ID:       4671654,
		Name:     "Austin",
		Cod:      200,
	}
}

func TestMapToDisplay_Austin(t *testing.T) {
	got := MapToDisplay(austinPayload())

	want := DisplayWeather{
		CityName:      "Austin",
		Country:       "US",
		Temperature:   "75°F",
		FeelsLike:     "78°F",
		TempMin:       "73°F",
		TempMax:       "81°F",
		Description:   "Scattered Clouds",
		MainCondition: "Clouds",
		IconURL:       "https://openweathermap.org/img/wn/03d@2x.png",
		Humidity:      "65%",
		Pressure:      "1015 hPa",
		WindSpeed:     "10 mph",
		WindDirection: "NW",
		Visibility:    "10.0 mi",
		Cloudiness:    "40%",
		Sunrise:       "5:30 AM",
		Sunset:        "7:35 PM",
		LastUpdated:   "2:05 PM",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MapToDisplay mismatch (-want +got):\n%s", diff)
	}
}

func TestMapToDisplay_EmptyConditions(t *testing.T) {
	p := austinPayload()
	p.Weather = nil

	got := MapToDisplay(p)

	assert.Equal(t, "Unknown", got.Description)
	assert.Equal(t, "Unknown", got.MainCondition)
	assert.Equal(t, "https://openweathermap.org/img/wn/01d@2x.png", got.IconURL)
}

func TestMapToDisplay_Idempotent(t *testing.T) {
	p := austinPayload()

	first := MapToDisplay(p)
	second := MapToDisplay(p)

	assert.Equal(t, first, second)
	assert.Equal(t, austinPayload(), p, "payload must not be mutated")
}

func TestMapToDisplay_ZeroPayload(t *testing.T) {
	got := MapToDisplay(RawWeatherPayload{})

	assert.Equal(t, "0°F", got.Temperature)
	assert.Equal(t, "0 mph", got.WindSpeed)
	assert.Equal(t, "N", got.WindDirection)
	assert.Equal(t, "0.0 mi", got.Visibility)
	assert.Equal(t, "12:00 AM", got.LastUpdated)
}

func TestFormatTemperature(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{77.8, "78°F"},
		{80.9, "81°F"},
		{75.4, "75°F"},
		{72.5, "73°F"},
		{0, "0°F"},
		{-0.4, "0°F"},
		{-0.5, "-1°F"},
		{-2.5, "-3°F"},
		{-12.2, "-12°F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatTemperature(tt.in), "input %v", tt.in)
	}
}

func TestWindDirection(t *testing.T) {
	tests := []struct {
		deg  int
		want string
	}{
		{0, "N"},
		{11, "N"},
		{12, "NNE"},
		{45, "NE"},
		{90, "E"},
		{135, "SE"},
		{180, "S"},
		{202, "SSW"},
		{225, "SW"},
		{270, "W"},
		{315, "NW"},
		{337, "NNW"},
		{348, "NNW"},
		{349, "N"},
		{359, "N"},
		{360, "N"},
		{450, "E"},
		{720, "N"},
		{-11, "N"},
		{-12, "NNW"},
		{-90, "W"},
		{-450, "W"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, windDirection(tt.deg), "degrees %d", tt.deg)
	}
}

func TestWindDirection_AlwaysCompassPoint(t *testing.T) {
	valid := make(map[string]bool, len(compassPoints))
	for _, p := range compassPoints {
		valid[p] = true
	}
	for deg := 0; deg < 360; deg++ {
		assert.True(t, valid[windDirection(deg)], "degrees %d", deg)
	}
}

func TestCapitalizeWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"two words", "scattered clouds", "Scattered Clouds"},
		{"single word", "mist", "Mist"},
		{"rest untouched", "heavy intensity RAIN", "Heavy Intensity RAIN"},
		{"mixed case kept", "tHunderstorm", "THunderstorm"},
		{"double space kept", "light  rain", "Light  Rain"},
		{"empty", "", ""},
		{"already capitalized", "Clear Sky", "Clear Sky"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, capitalizeWords(tt.in))
		})
	}
}

func TestFormatVisibility(t *testing.T) {
	assert.Equal(t, "10.0 mi", formatVisibility(16093))
	assert.Equal(t, "6.2 mi", formatVisibility(10000))
	assert.Equal(t, "0.0 mi", formatVisibility(0))
	assert.Equal(t, "1.0 mi", formatVisibility(1609))
}

func TestFormatLocalTime(t *testing.T) {
	ts := time.Date(2024, 6, 4, 12, 30, 0, 0, time.UTC).Unix()

	tests := []struct {
		name   string
		offset int
		want   string
	}{
		{"utc", 0, "12:30 PM"},
		{"central", austinOffset, "6:30 AM"},
		{"eastern daylight", -14400, "8:30 AM"},
		{"india half hour", 19800, "6:00 PM"},
		{"crosses midnight", 43200, "12:30 AM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatLocalTime(ts, tt.offset))
		})
	}
}
