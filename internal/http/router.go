package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kjstillabower/weather-widget/internal/observability"
	"github.com/kjstillabower/weather-widget/internal/render"
)

// NewRouter wires every route. Lookup routes (search, weather, forecast)
// share the rate limiter and request timeout; / and /health do not.
func NewRouter(h *Handler, logger *zap.Logger, limiter *rate.Limiter, requestTimeout time.Duration) *mux.Router {
	router := mux.NewRouter()
	router.Use(CorrelationIDMiddleware(logger))
	router.Use(MetricsMiddleware)

	router.HandleFunc("/", h.GetWidget).Methods(http.MethodGet)
	router.Handle("/static/widget.css", render.StylesheetHandler()).Methods(http.MethodGet)
	router.HandleFunc("/health", h.GetHealth).Methods(http.MethodGet)
	router.Handle("/metrics", observability.MetricsHandler())

	lookup := router.NewRoute().Subrouter()
	lookup.Use(RateLimitMiddleware(limiter))
	lookup.Use(TimeoutMiddleware(requestTimeout))
	lookup.HandleFunc("/search", h.PostSearch).Methods(http.MethodPost)
	lookup.HandleFunc("/weather/{location}", h.GetWeather).Methods(http.MethodGet)
	lookup.HandleFunc("/forecast/{location}", h.GetForecast).Methods(http.MethodGet)

	return router
}
