package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kjstillabower/weather-widget/internal/forecast"
	"github.com/kjstillabower/weather-widget/internal/observability"
)

// WeatherClient fetches raw provider payloads. Payloads are returned as
// decoded, not reshaped; see package forecast for display records.
type WeatherClient interface {
	GetCurrentConditions(ctx context.Context, location string) (*forecast.CurrentConditions, error)
	GetForecast(ctx context.Context, location string) (*forecast.Response, error)
	ValidateAPIKey(ctx context.Context) error
}

var (
	ErrInvalidAPIKey    = errors.New("invalid API key")
	ErrLocationNotFound = errors.New("location not found")
	ErrUpstreamFailure  = errors.New("upstream failure")
	ErrRateLimited      = errors.New("rate limited")
)

const (
	endpointWeather  = "weather"
	endpointForecast = "forecast"

	maxBodyBytes   = 4 << 20
	defaultTimeout = 10 * time.Second
)

// OpenWeatherClient talks to the OpenWeatherMap 2.5 API. Temperatures come
// back in Kelvin; no units parameter is sent.
type OpenWeatherClient struct {
	apiKey   string
	baseURL  string
	envelope string
	timeout  time.Duration
	client   *http.Client
}

// Option configures an OpenWeatherClient.
type Option func(*OpenWeatherClient)

// WithEnvelope makes the client unwrap response bodies nested under key,
// e.g. {"record": {...}} from a JSON storage proxy.
func WithEnvelope(key string) Option {
	return func(c *OpenWeatherClient) { c.envelope = strings.TrimSpace(key) }
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *OpenWeatherClient) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewOpenWeatherClient returns a client for baseURL (e.g.
// https://api.openweathermap.org/data/2.5). The endpoint name is appended.
func NewOpenWeatherClient(apiKey, baseURL string, timeout time.Duration, opts ...Option) (*OpenWeatherClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidAPIKey)
	}
	if len(apiKey) < 10 {
		return nil, fmt.Errorf("%w: API key appears invalid (too short)", ErrInvalidAPIKey)
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := &OpenWeatherClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetCurrentConditions fetches GET {base}/weather?q=location.
func (c *OpenWeatherClient) GetCurrentConditions(ctx context.Context, location string) (*forecast.CurrentConditions, error) {
	var out forecast.CurrentConditions
	if err := c.fetch(ctx, endpointWeather, location, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetForecast fetches GET {base}/forecast?q=location (5 day / 3 hour steps).
func (c *OpenWeatherClient) GetForecast(ctx context.Context, location string) (*forecast.Response, error) {
	var out forecast.Response
	if err := c.fetch(ctx, endpointForecast, location, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *OpenWeatherClient) fetch(ctx context.Context, endpoint, location string, v interface{}) error {
	err := c.callAPI(ctx, endpoint, location, v)
	if err != nil {
		observability.WeatherAPIErrorsTotal.WithLabelValues(endpoint, string(CategorizeError(err))).Inc()
	}
	return err
}

func (c *OpenWeatherClient) callAPI(ctx context.Context, endpoint, location string, v interface{}) error {
	start := time.Now()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.buildRequest(reqCtx, endpoint, location)
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("build request: %w", err)
	}

	if corrID := observability.CorrelationID(ctx); corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues(endpoint, "error").Inc()
		observability.WeatherAPIDuration.WithLabelValues(endpoint, "error").Observe(time.Since(start).Seconds())

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return fmt.Errorf("request timeout: %w", err)
		}
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	status := statusLabel(resp.StatusCode)
	observability.WeatherAPICallsTotal.WithLabelValues(endpoint, status).Inc()
	observability.WeatherAPIDuration.WithLabelValues(endpoint, status).Observe(time.Since(start).Seconds())

	if err := handleErrorResponse(resp); err != nil {
		return err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	return c.decode(body, v)
}

// decode unmarshals body into v, unwrapping the configured envelope first.
func (c *OpenWeatherClient) decode(body []byte, v interface{}) error {
	if c.envelope != "" {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return fmt.Errorf("parse response envelope: %w", err)
		}
		inner, ok := wrapped[c.envelope]
		if !ok {
			return fmt.Errorf("parse response envelope: missing %q", c.envelope)
		}
		body = inner
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func (c *OpenWeatherClient) buildRequest(ctx context.Context, endpoint, location string) (*http.Request, error) {
	u, err := url.Parse(c.baseURL + "/" + endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}

	params := url.Values{}
	params.Set("q", location)
	params.Set("appid", c.apiKey)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func handleErrorResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: HTTP 401", ErrInvalidAPIKey)
	case http.StatusNotFound:
		return ErrLocationNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: HTTP %d", ErrUpstreamFailure, resp.StatusCode)
	}
	return nil
}

func statusLabel(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "success"
	case statusCode == http.StatusTooManyRequests:
		return "rate_limited"
	case statusCode >= 400 && statusCode < 500:
		return "client_error"
	case statusCode >= 500:
		return "server_error"
	}
	return "error"
}

// ValidateAPIKey issues a cheap lookup and reports whether the key is accepted.
func (c *OpenWeatherClient) ValidateAPIKey(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := c.buildRequest(ctx, endpointWeather, "London")
	if err != nil {
		return fmt.Errorf("build validation request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("validation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: API key is invalid or not activated", ErrInvalidAPIKey)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("validation failed: HTTP %d", resp.StatusCode)
	}
	return nil
}
