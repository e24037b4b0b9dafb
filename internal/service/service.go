package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-widget/internal/client"
	"github.com/kjstillabower/weather-widget/internal/forecast"
	"github.com/kjstillabower/weather-widget/internal/observability"
)

// Forecast holds both display reductions of one forecast payload.
type Forecast struct {
	Hourly []forecast.HourlyRecord `json:"hourly"`
	Daily  []forecast.DailyRecord  `json:"daily"`
}

// WeatherService fetches provider payloads and reduces forecasts into
// display records. Every call goes upstream; nothing is cached.
type WeatherService struct {
	client    client.WeatherClient
	formatter forecast.Formatter
}

func NewWeatherService(client client.WeatherClient, formatter forecast.Formatter) *WeatherService {
	return &WeatherService{client: client, formatter: formatter}
}

// Formatter returns the timestamp formatter used for display records.
func (s *WeatherService) Formatter() forecast.Formatter {
	return s.formatter
}

// CurrentConditions fetches the raw current-conditions payload for location.
func (s *WeatherService) CurrentConditions(ctx context.Context, location string) (*forecast.CurrentConditions, error) {
	loc := normalizeLocation(location)
	start := time.Now()
	observability.RecordWeatherQuery(loc)

	cur, err := s.client.GetCurrentConditions(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("fetch current conditions for %s: %w", loc, err)
	}
	if logger := observability.LoggerFromContext(ctx); logger != nil {
		logger.Debug("current conditions served", zap.String("location", loc), zap.Duration("duration", time.Since(start)))
	}
	return cur, nil
}

// Forecast fetches the 3-hourly forecast for location and reduces it.
func (s *WeatherService) Forecast(ctx context.Context, location string) (Forecast, error) {
	resp, err := s.RawForecast(ctx, location)
	if err != nil {
		return Forecast{}, err
	}
	return s.Reduce(resp), nil
}

// RawForecast fetches the unreduced forecast payload for location.
func (s *WeatherService) RawForecast(ctx context.Context, location string) (*forecast.Response, error) {
	loc := normalizeLocation(location)
	start := time.Now()

	resp, err := s.client.GetForecast(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("fetch forecast for %s: %w", loc, err)
	}
	if logger := observability.LoggerFromContext(ctx); logger != nil {
		n := 0
		if resp != nil {
			n = len(resp.List)
		}
		logger.Debug("forecast served", zap.String("location", loc), zap.Int("entries", n), zap.Duration("duration", time.Since(start)))
	}
	return resp, nil
}

// Reduce maps a forecast payload to hourly and daily records.
func (s *WeatherService) Reduce(resp *forecast.Response) Forecast {
	f := Forecast{
		Hourly: forecast.Hourly(resp, s.formatter),
		Daily:  forecast.Daily(resp, s.formatter),
	}
	observability.RecordForecastRecords(len(f.Hourly), len(f.Daily))
	return f
}

// normalizeLocation trims surrounding whitespace. Case is left to the provider.
func normalizeLocation(location string) string {
	return strings.TrimSpace(location)
}
