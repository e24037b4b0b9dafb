package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kjstillabower/weather-widget/internal/client"
	"github.com/kjstillabower/weather-widget/internal/forecast"
	"github.com/kjstillabower/weather-widget/internal/lifecycle"
	"github.com/kjstillabower/weather-widget/internal/observability"
	"github.com/kjstillabower/weather-widget/internal/overload"
	"github.com/kjstillabower/weather-widget/internal/render"
	"github.com/kjstillabower/weather-widget/internal/service"
	"github.com/kjstillabower/weather-widget/internal/traffic"
	"github.com/kjstillabower/weather-widget/internal/validation"
	"github.com/kjstillabower/weather-widget/internal/widget"
)

// HealthConfig holds thresholds for the health handler.
type HealthConfig struct {
	Overload         overload.Threshold
	DegradedWindow   time.Duration
	DegradedErrorPct int
}

// LocationLimits bounds the {location} path variable and the search input.
type LocationLimits struct {
	MinLength int
	MaxLength int
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	weatherService   *service.WeatherService
	widget           *widget.Widget
	client           client.WeatherClient
	healthConfig     *HealthConfig
	logger           *zap.Logger
	limits           LocationLimits
	healthStatusMu   sync.Mutex
	healthStatusPrev string
}

// NewHandler returns a new Handler.
func NewHandler(
	weatherService *service.WeatherService,
	w *widget.Widget,
	client client.WeatherClient,
	healthConfig *HealthConfig,
	logger *zap.Logger,
	limits LocationLimits,
) *Handler {
	return &Handler{
		weatherService: weatherService,
		widget:         w,
		client:         client,
		healthConfig:   healthConfig,
		logger:         logger,
		limits:         limits,
	}
}

// GetWidget handles GET /.
func (h *Handler) GetWidget(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, r, http.StatusOK, "")
}

// PostSearch handles POST /search with form field city. On success it
// redirects back to the widget; on failure the page is rendered with the error.
func (h *Handler) PostSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.writePage(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}
	err := h.widget.Search(r.Context(), r.PostForm.Get("city"))
	if err != nil {
		if !validation.IsValidationError(err) {
			traffic.Record(traffic.Error)
		}
		status, _, msg := classifyError(err)
		h.writePage(w, r, status, msg)
		return
	}
	traffic.Record(traffic.Success)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := render.Page(w, h.widget.Snapshot(), errMsg); err != nil {
		if logger := observability.LoggerFromContext(r.Context()); logger != nil {
			logger.Error("render widget", zap.Error(err))
		}
	}
}

// GetWeather handles GET /weather/{location}.
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	location, ok := h.locationVar(w, r)
	if !ok {
		return
	}
	cur, err := h.weatherService.CurrentConditions(r.Context(), location)
	if err != nil {
		traffic.Record(traffic.Error)
		writeServiceError(w, r, err)
		return
	}
	traffic.Record(traffic.Success)
	writeJSON(w, http.StatusOK, forecast.Summarize(cur, h.weatherService.Formatter()))
}

type forecastResponse struct {
	Location string `json:"location"`
	service.Forecast
}

// GetForecast handles GET /forecast/{location}.
func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	location, ok := h.locationVar(w, r)
	if !ok {
		return
	}
	fc, err := h.weatherService.Forecast(r.Context(), location)
	if err != nil {
		traffic.Record(traffic.Error)
		writeServiceError(w, r, err)
		return
	}
	traffic.Record(traffic.Success)
	writeJSON(w, http.StatusOK, forecastResponse{Location: location, Forecast: fc})
}

func (h *Handler) locationVar(w http.ResponseWriter, r *http.Request) (string, bool) {
	location, err := validation.ValidateLocation(mux.Vars(r)["location"], h.limits.MinLength, h.limits.MaxLength)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_LOCATION", err.Error())
		return "", false
	}
	return location, true
}

type healthResult struct {
	status     string
	statusCode int
	reason     string
}

// GetHealth handles GET /health.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	result := h.computeHealthStatus(r.Context())

	h.healthStatusMu.Lock()
	prev := h.healthStatusPrev
	if prev != "" && prev != result.status {
		h.logger.Info("health status transition",
			zap.String("previous_status", prev),
			zap.String("current_status", result.status),
			zap.String("reason", result.reason))
	}
	h.healthStatusPrev = result.status
	h.healthStatusMu.Unlock()

	checks := map[string]string{"weatherApi": "healthy"}
	if result.reason == "api_key_invalid" || result.reason == "error_rate_breach" {
		checks["weatherApi"] = "unhealthy"
	}
	body := map[string]interface{}{
		"status":    result.status,
		"service":   observability.ServiceName,
		"version":   "dev",
		"checks":    checks,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if since, ok := lifecycle.ShutdownStarted(); ok {
		body["shutdownStartedAt"] = since.UTC().Format(time.RFC3339)
	}
	writeJSON(w, result.statusCode, body)
}

// computeHealthStatus evaluates, in order: shutting-down, API key validity,
// overload, upstream error rate. The first condition that holds decides the status.
func (h *Handler) computeHealthStatus(ctx context.Context) healthResult {
	if lifecycle.IsShuttingDown() {
		return healthResult{"shutting-down", http.StatusServiceUnavailable, "signal"}
	}
	if err := h.client.ValidateAPIKey(ctx); err != nil {
		return healthResult{"degraded", http.StatusServiceUnavailable, "api_key_invalid"}
	}
	if h.healthConfig == nil {
		return healthResult{"healthy", http.StatusOK, ""}
	}
	if h.healthConfig.Overload.Exceeded() {
		return healthResult{"overloaded", http.StatusServiceUnavailable, "overload_threshold"}
	}
	if h.healthConfig.DegradedWindow > 0 && h.healthConfig.DegradedErrorPct > 0 {
		errs, total := traffic.ErrorRate(h.healthConfig.DegradedWindow)
		if total > 0 && float64(errs)*100/float64(total) >= float64(h.healthConfig.DegradedErrorPct) {
			return healthResult{"degraded", http.StatusServiceUnavailable, "error_rate_breach"}
		}
	}
	return healthResult{"healthy", http.StatusOK, ""}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error": {code, message, requestId}}.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":      code,
			"message":   message,
			"requestId": observability.CorrelationID(r.Context()),
		},
	})
}

// writeServiceError maps an upstream error to a status and logs it at DEBUG.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := classifyError(err)
	writeError(w, r, status, code, msg)
	if logger := observability.LoggerFromContext(r.Context()); logger != nil {
		logger.Debug("upstream error", zap.Error(err), zap.String("category", string(client.CategorizeError(err))))
	}
}

func classifyError(err error) (status int, code, message string) {
	switch {
	case validation.IsValidationError(err):
		return http.StatusBadRequest, "INVALID_LOCATION", err.Error()
	case errors.Is(err, client.ErrLocationNotFound):
		return http.StatusNotFound, "LOCATION_NOT_FOUND", "Location not found"
	case errors.Is(err, client.ErrRateLimited):
		return http.StatusTooManyRequests, "UPSTREAM_RATE_LIMITED", "Weather provider rate limit reached"
	}
	return http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Unable to fetch weather data"
}
