package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/city-weather-service/internal/domain"
	"github.com/couchcryptid/city-weather-service/internal/lookup"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// WeatherLookup is the lookup surface exposed over HTTP.
type WeatherLookup interface {
	SearchCity(ctx context.Context, query string) (domain.DisplayWeather, error)
	SearchCoordinates(ctx context.Context, lat, lon float64) (domain.DisplayWeather, error)
	SearchCurrentLocation(ctx context.Context) (domain.DisplayWeather, error)
	LoadInitial(ctx context.Context) (domain.DisplayWeather, error)
	LastCity(ctx context.Context) (string, bool, error)
	ClearLastCity(ctx context.Context) error
}

// Server exposes the weather API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	weather    WeatherLookup
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the /v1 weather routes, /healthz, /readyz, and /metrics.
func NewServer(addr string, weather WeatherLookup, ready ReadinessChecker, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: r,
			// Provider calls may take up to the 30s client timeout.
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 45 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		weather: weather,
		logger:  logger,
	}

	r.Use(RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", handleReady(ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.logRequests)
		r.Get("/weather", s.handleCity)
		r.Get("/weather/coordinates", s.handleCoordinates)
		r.Get("/weather/current", s.handleCurrentLocation)
		r.Get("/weather/initial", s.handleInitial)
		r.Get("/last-city", s.handleGetLastCity)
		r.Delete("/last-city", s.handleClearLastCity)
	})

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleCity(w http.ResponseWriter, r *http.Request) {
	display, err := s.weather.SearchCity(r.Context(), r.URL.Query().Get("city"))
	s.respond(w, r, display, err)
}

func (s *Server) handleCoordinates(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if errLat != nil || errLon != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "lat and lon must be decimal numbers")
		return
	}

	display, err := s.weather.SearchCoordinates(r.Context(), lat, lon)
	s.respond(w, r, display, err)
}

func (s *Server) handleCurrentLocation(w http.ResponseWriter, r *http.Request) {
	display, err := s.weather.SearchCurrentLocation(r.Context())
	s.respond(w, r, display, err)
}

func (s *Server) handleInitial(w http.ResponseWriter, r *http.Request) {
	display, err := s.weather.LoadInitial(r.Context())
	s.respond(w, r, display, err)
}

func (s *Server) handleGetLastCity(w http.ResponseWriter, r *http.Request) {
	city, ok, err := s.weather.LastCity(r.Context())
	if err != nil {
		s.logger.Error("read last city failed", "error", err, "request_id", requestIDFrom(r))
		writeError(w, http.StatusInternalServerError, "store_error", "Unable to read the saved city.")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "No city has been saved.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"city": city})
}

func (s *Server) handleClearLastCity(w http.ResponseWriter, r *http.Request) {
	if err := s.weather.ClearLastCity(r.Context()); err != nil {
		s.logger.Error("clear last city failed", "error", err, "request_id", requestIDFrom(r))
		writeError(w, http.StatusInternalServerError, "store_error", "Unable to clear the saved city.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, display domain.DisplayWeather, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, display)
		return
	}

	var ce *domain.ClassifiedError
	if errors.As(err, &ce) {
		writeError(w, statusForKind(ce.Kind), ce.Kind.String(), ce.Message)
		return
	}

	switch {
	case errors.Is(err, lookup.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, "bad_request", "city query parameter is required")
	case errors.Is(err, lookup.ErrNoInitialLocation):
		writeError(w, http.StatusNotFound, "not_found", "No saved city and no location available.")
	default:
		s.logger.Error("unclassified lookup error", "error", err, "request_id", requestIDFrom(r))
		writeError(w, http.StatusInternalServerError, "internal", "Unexpected error.")
	}
}

// statusForKind maps a classified lookup failure onto the status this API returns.
func statusForKind(k domain.ErrorKind) int {
	switch k {
	case domain.KindCityNotFound:
		return http.StatusNotFound
	case domain.KindRateLimitExceeded:
		return http.StatusTooManyRequests
	case domain.KindAPIKey, domain.KindServer, domain.KindEmptyResponse:
		return http.StatusBadGateway
	case domain.KindNetwork:
		return http.StatusServiceUnavailable
	case domain.KindLocation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", requestIDFrom(r),
		)
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"error": code, "message": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
