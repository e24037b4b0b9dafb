// Package widget holds the view state behind the weather page: the search
// input, the latest current conditions and the two forecast lists.
package widget

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-widget/internal/forecast"
	"github.com/kjstillabower/weather-widget/internal/observability"
	"github.com/kjstillabower/weather-widget/internal/service"
	"github.com/kjstillabower/weather-widget/internal/validation"
)

// View is a point-in-time copy of the widget state.
type View struct {
	City           string
	WeatherData    *forecast.CurrentConditions
	HourlyForecast []forecast.HourlyRecord
	DailyForecast  []forecast.DailyRecord
	Formatter      forecast.Formatter
}

// Temperature is the current temperature in °C, or ok=false with no data.
func (v View) Temperature() (int, bool) {
	return forecast.Temperature(v.WeatherData)
}

// Loading reports whether current conditions have not arrived yet.
func (v View) Loading() bool {
	return v.WeatherData == nil
}

// Limits bounds the accepted city input, in runes. Zero disables a bound.
type Limits struct {
	MinLength int
	MaxLength int
}

// Widget owns the view state. It is safe for concurrent use; concurrent
// searches race and whichever fetch finishes last wins each field.
type Widget struct {
	svc    *service.WeatherService
	limits Limits

	mu    sync.RWMutex
	state View
}

func New(svc *service.WeatherService, limits Limits) *Widget {
	return &Widget{
		svc:    svc,
		limits: limits,
		state: View{
			HourlyForecast: []forecast.HourlyRecord{},
			DailyForecast:  []forecast.DailyRecord{},
			Formatter:      svc.Formatter(),
		},
	}
}

// Snapshot returns a copy of the current state for rendering.
func (w *Widget) Snapshot() View {
	w.mu.RLock()
	defer w.mu.RUnlock()
	v := w.state
	v.HourlyForecast = append([]forecast.HourlyRecord{}, w.state.HourlyForecast...)
	v.DailyForecast = append([]forecast.DailyRecord{}, w.state.DailyForecast...)
	return v
}

// Search stores city and fetches current conditions and the forecast
// concurrently. Each successful fetch replaces its own fields; a failed fetch
// leaves the previous value in place. Errors from both fetches are joined.
func (w *Widget) Search(ctx context.Context, city string) error {
	city, err := validation.ValidateLocation(city, w.limits.MinLength, w.limits.MaxLength)
	if err != nil {
		observability.WidgetSearchesTotal.WithLabelValues("invalid").Inc()
		return err
	}

	w.mu.Lock()
	w.state.City = city
	w.mu.Unlock()

	var (
		wg                   sync.WaitGroup
		currentErr, fcastErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		cur, err := w.svc.CurrentConditions(ctx, city)
		if err != nil {
			currentErr = err
			return
		}
		w.mu.Lock()
		w.state.WeatherData = cur
		w.mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		resp, err := w.svc.RawForecast(ctx, city)
		if err != nil {
			fcastErr = err
			return
		}
		reduced := w.svc.Reduce(resp)
		w.mu.Lock()
		w.state.HourlyForecast = reduced.Hourly
		w.state.DailyForecast = reduced.Daily
		w.mu.Unlock()
	}()
	wg.Wait()

	err = errors.Join(currentErr, fcastErr)
	switch {
	case err == nil:
		observability.WidgetSearchesTotal.WithLabelValues("success").Inc()
	case currentErr != nil && fcastErr != nil:
		observability.WidgetSearchesTotal.WithLabelValues("error").Inc()
	default:
		observability.WidgetSearchesTotal.WithLabelValues("partial").Inc()
	}
	if err != nil {
		if logger := observability.LoggerFromContext(ctx); logger != nil {
			logger.Warn("widget search failed", zap.String("city", city), zap.Error(err))
		}
	}
	return err
}
