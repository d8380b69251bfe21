package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for weather lookups.
type Metrics struct {
	// Provider metrics.
	WeatherRequests    *prometheus.CounterVec   // labels: method={city,coordinates}, outcome={success,<error kind>}
	WeatherAPIDuration *prometheus.HistogramVec // labels: method={city,coordinates}

	// Lookup service metrics.
	Lookups          *prometheus.CounterVec // labels: kind={city,coordinates,location}, outcome={success,error}
	LastCityErrors   *prometheus.CounterVec // labels: op={get,set,clear}
	EventsPublished  prometheus.Counter
	EventPublishErrs prometheus.Counter
	PublisherEnabled prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		WeatherRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "city_weather",
			Name:      "provider_requests_total",
			Help:      "Weather provider requests by method and outcome.",
		}, []string{"method", "outcome"}),
		WeatherAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "city_weather",
			Name:      "provider_request_duration_seconds",
			Help:      "Weather provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"method"}),
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "city_weather",
			Name:      "lookups_total",
			Help:      "Lookups served by kind and outcome.",
		}, []string{"kind", "outcome"}),
		LastCityErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "city_weather",
			Name:      "last_city_errors_total",
			Help:      "Last-city store failures by operation.",
		}, []string{"op"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "city_weather",
			Name:      "lookup_events_published_total",
			Help:      "Lookup events written to the event topic.",
		}),
		EventPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "city_weather",
			Name:      "lookup_event_publish_errors_total",
			Help:      "Lookup events that failed to publish.",
		}),
		PublisherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "city_weather",
			Name:      "lookup_publisher_enabled",
			Help:      "1 when lookup events are published, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.WeatherRequests,
		m.WeatherAPIDuration,
		m.Lookups,
		m.LastCityErrors,
		m.EventsPublished,
		m.EventPublishErrs,
		m.PublisherEnabled,
	)

	return m
}

// NewUnregisteredMetrics creates Metrics that are not registered with any
// registry, for one-shot processes that never serve /metrics.
func NewUnregisteredMetrics() *Metrics {
	return &Metrics{
		WeatherRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "city_weather", Name: "provider_requests_total"}, []string{"method", "outcome"}),
		WeatherAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "city_weather", Name: "provider_request_duration_seconds"}, []string{"method"}),
		Lookups:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "city_weather", Name: "lookups_total"}, []string{"kind", "outcome"}),
		LastCityErrors:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "city_weather", Name: "last_city_errors_total"}, []string{"op"}),
		EventsPublished:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "city_weather", Name: "lookup_events_published_total"}),
		EventPublishErrs:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "city_weather", Name: "lookup_event_publish_errors_total"}),
		PublisherEnabled:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "city_weather", Name: "lookup_publisher_enabled"}),
	}
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as many as they like.
func NewMetricsForTesting() *Metrics {
	return NewUnregisteredMetrics()
}
