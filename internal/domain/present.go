package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	// IconBaseURL is the provider's icon CDN; codes are suffixed with "@2x.png".
	IconBaseURL     = "https://openweathermap.org/img/wn/"
	DefaultIconCode = "01d"
	unknownText     = "Unknown"

	metersPerMile = 1609.34
	timeOfDay     = "3:04 PM"
)

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// MapToDisplay formats a raw payload for presentation. It never fails:
// an empty condition list falls back to "Unknown" and the default icon.
func MapToDisplay(p RawWeatherPayload) DisplayWeather {
	description, mainCondition, icon := unknownText, unknownText, DefaultIconCode
	if len(p.Weather) > 0 {
		primary := p.Weather[0]
		description = primary.Description
		mainCondition = primary.Main
		icon = primary.Icon
	}

	return DisplayWeather{
		CityName:      p.Name,
		Country:       p.Sys.Country,
		Temperature:   formatTemperature(p.Main.Temp),
		FeelsLike:     formatTemperature(p.Main.FeelsLike),
		TempMin:       formatTemperature(p.Main.TempMin),
		TempMax:       formatTemperature(p.Main.TempMax),
		Description:   capitalizeWords(description),
		MainCondition: mainCondition,
		IconURL:       iconURL(icon),
		Humidity:      strconv.Itoa(p.Main.Humidity) + "%",
		Pressure:      strconv.Itoa(p.Main.Pressure) + " hPa",
		WindSpeed:     strconv.FormatInt(roundHalfAway(p.Wind.Speed), 10) + " mph",
		WindDirection: windDirection(p.Wind.Deg),
		Visibility:    formatVisibility(p.Visibility),
		Cloudiness:    strconv.Itoa(p.Clouds.All) + "%",
		Sunrise:       formatLocalTime(p.Sys.Sunrise, p.Timezone),
		Sunset:        formatLocalTime(p.Sys.Sunset, p.Timezone),
		LastUpdated:   formatLocalTime(p.Dt, p.Timezone),
	}
}

func roundHalfAway(v float64) int64 {
	return int64(math.Round(v))
}

// formatTemperature rounds half away from zero, e.g. 77.8 -> "78°F".
func formatTemperature(f float64) string {
	return strconv.FormatInt(roundHalfAway(f), 10) + "°F"
}

// windDirection buckets degrees into 22.5° compass sectors centred on each point.
// Degrees are not clamped; out-of-range values wrap.
func windDirection(deg int) string {
	idx := int(math.Floor((float64(deg)+11.25)/22.5)) % len(compassPoints)
	if idx < 0 {
		idx += len(compassPoints)
	}
	return compassPoints[idx]
}

// capitalizeWords upper-cases the first letter of each space-separated word
// and leaves the remainder of each word as-is.
func capitalizeWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 || r == utf8.RuneError {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func iconURL(code string) string {
	return IconBaseURL + code + "@2x.png"
}

func formatVisibility(meters int) string {
	return fmt.Sprintf("%.1f mi", float64(meters)/metersPerMile)
}

// formatLocalTime renders a Unix timestamp as a 12-hour time of day in a
// fixed offset zone. DST rules are not applied.
func formatLocalTime(unix int64, offsetSeconds int) string {
	zone := time.FixedZone("GMT", offsetSeconds)
	return time.Unix(unix, 0).In(zone).Format(timeOfDay)
}
