package openweather

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/city-weather-service/internal/domain"
	"github.com/couchcryptid/city-weather-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Responses larger than this are treated as transport failures.
const maxBodyBytes = 1 << 20

// Client implements domain.WeatherProvider using the OpenWeatherMap current weather API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
	clock      clockwork.Clock
}

// NewClient creates an OpenWeatherMap client. timeout bounds connecting,
// the TLS handshake, waiting for response headers, and the request as a whole.
func NewClient(apiKey, baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		httpClient: newHTTPClient(timeout),
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
		clock:      clockwork.NewRealClock(),
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = timeout
	transport.ResponseHeaderTimeout = timeout

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// FetchByCity looks up current conditions for a free-text city. The query is
// qualified with the country code via domain.FormatCityQuery.
func (c *Client) FetchByCity(ctx context.Context, cityQuery string) (domain.RawWeatherPayload, error) {
	params := url.Values{
		"q": {domain.FormatCityQuery(cityQuery)},
	}
	return c.doRequest(ctx, params, "city")
}

// FetchByCoordinates looks up current conditions for a latitude/longitude pair.
func (c *Client) FetchByCoordinates(ctx context.Context, lat, lon float64) (domain.RawWeatherPayload, error) {
	params := url.Values{
		"lat": {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon": {strconv.FormatFloat(lon, 'f', -1, 64)},
	}
	return c.doRequest(ctx, params, "coordinates")
}

func (c *Client) doRequest(ctx context.Context, params url.Values, method string) (domain.RawWeatherPayload, error) {
	params.Set("appid", c.apiKey)
	params.Set("units", "imperial")
	fullURL := c.baseURL + "/weather?" + params.Encode()

	start := c.clock.Now()
	payload, err := c.fetch(ctx, fullURL)
	c.metrics.WeatherAPIDuration.WithLabelValues(method).Observe(c.clock.Since(start).Seconds())

	if err != nil {
		c.metrics.WeatherRequests.WithLabelValues(method, domain.KindOf(err).String()).Inc()
		c.logger.Warn("weather request failed",
			"method", method,
			"kind", domain.KindOf(err).String(),
			"error", causeOf(err),
		)
		return domain.RawWeatherPayload{}, err
	}

	c.metrics.WeatherRequests.WithLabelValues(method, "success").Inc()
	c.logger.Debug("weather request succeeded", "method", method, "city", payload.Name)
	return payload, nil
}

// fetch performs the GET and classifies the outcome. Every non-nil error is a *domain.ClassifiedError.
func (c *Client) fetch(ctx context.Context, fullURL string) (domain.RawWeatherPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.RawWeatherPayload{}, domain.NetworkError(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RawWeatherPayload{}, domain.NetworkError(fmt.Errorf("weather request: %w", redact(err)))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return domain.RawWeatherPayload{}, domain.ClassifyStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return domain.RawWeatherPayload{}, domain.NetworkError(fmt.Errorf("read response: %w", redact(err)))
	}
	if len(body) > maxBodyBytes {
		return domain.RawWeatherPayload{}, domain.NetworkError(fmt.Errorf("response exceeds %d bytes", maxBodyBytes))
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return domain.RawWeatherPayload{}, &domain.ClassifiedError{Kind: domain.KindEmptyResponse, Message: domain.MsgEmptyResponse}
	}

	var payload domain.RawWeatherPayload
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return domain.RawWeatherPayload{}, domain.NetworkError(fmt.Errorf("decode response: %w", err))
	}
	return payload, nil
}

// redact strips the request URL, which carries the API key, from transport errors.
func redact(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return &url.Error{Op: ue.Op, URL: "[redacted]", Err: ue.Err}
	}
	return err
}

// causeOf returns the underlying failure for logs, falling back to err itself.
func causeOf(err error) error {
	if u := errors.Unwrap(err); u != nil {
		return u
	}
	return err
}
