package domain

import "strings"

// CountryQualifier is appended to city queries that do not name a country.
const CountryQualifier = "US"

// FormatCityQuery normalizes free text into the provider's "city,state,country" form.
// Segments are trimmed and rejoined; input with three or more segments is
// returned unchanged. Segment content is not validated.
func FormatCityQuery(query string) string {
	parts := strings.Split(query, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 1:
		return parts[0] + "," + CountryQualifier
	case 2:
		return parts[0] + "," + parts[1] + "," + CountryQualifier
	default:
		return query
	}
}
