// Package domain models current-conditions data returned by the
// OpenWeatherMap "current weather" endpoint and its display projection.
//
// # Data Source
//
// Payloads come from https://api.openweathermap.org/data/2.5/weather,
// queried either by city ("q" parameter) or by coordinates ("lat"/"lon").
// Requests always pass units=imperial, so the provider has already converted
// temperatures to Fahrenheit and wind speed to miles per hour.
//
// # Provider Conventions
//
// City query format:
//
//	"<city>,<state>,<country>"  →  e.g. "Austin,TX,US"
//	The country qualifier is appended by [FormatCityQuery] when the caller
//	supplies only a city or a city and state. Three or more segments are
//	assumed to carry their own qualifier and are sent as-is.
//
// Timestamps:
//
//	"dt", "sys.sunrise" and "sys.sunset" are Unix seconds in UTC.
//	"timezone" is the location's offset from UTC in seconds (may be negative).
//	The offset is applied as a fixed GMT offset with no DST rules; the
//	provider already reports the offset in effect at observation time.
//
// Units:
//
//	Visibility is always reported in meters regardless of the units parameter
//	and is converted to statute miles (1 mi = 1609.34 m) for display.
//	Wind direction ("wind.deg") is meteorological degrees and is bucketed
//	into the 16-point compass rose: N, NNE, NE, ENE, E, ESE, SE, SSE,
//	S, SSW, SW, WSW, W, WNW, NW, NNW.
//
// Conditions:
//
//	"weather" is an ordered list; the first entry is the primary condition.
//	The list may be empty, in which case display fields fall back to
//	"Unknown" and the default icon code "01d".
//
// # Errors
//
// Failures at the provider boundary are reported as [*ClassifiedError]
// values drawn from a closed set of kinds. Messages are written for direct
// display and never include transport internals.
package domain
