//go:build integration
// +build integration

package client

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/kjstillabower/weather-widget/internal/forecast"
)

func integrationClient(t *testing.T) *OpenWeatherClient {
	t.Helper()
	apiKey := os.Getenv("WEATHER_API_KEY")
	if apiKey == "" {
		t.Skip("WEATHER_API_KEY not set, skipping integration test")
	}
	c, err := NewOpenWeatherClient(apiKey, "https://api.openweathermap.org/data/2.5", 5*time.Second)
	if err != nil {
		t.Fatalf("NewOpenWeatherClient() error = %v", err)
	}
	return c
}

func TestOpenWeatherClient_ValidateAPIKey_Integration(t *testing.T) {
	c := integrationClient(t)
	if err := c.ValidateAPIKey(context.Background()); err != nil {
		t.Fatalf("ValidateAPIKey() error = %v", err)
	}
}

func TestOpenWeatherClient_London_Integration(t *testing.T) {
	c := integrationClient(t)
	ctx := context.Background()

	cur, err := c.GetCurrentConditions(ctx, "London")
	if err != nil {
		t.Fatalf("GetCurrentConditions() error = %v", err)
	}
	if _, ok := forecast.Temperature(cur); !ok {
		t.Error("expected main.temp in live payload")
	}

	resp, err := c.GetForecast(ctx, "London")
	if err != nil {
		t.Fatalf("GetForecast() error = %v", err)
	}
	if n := len(forecast.Daily(resp, forecast.Formatter{})); n == 0 || n > forecast.MaxDays {
		t.Errorf("Daily() returned %d records", n)
	}
}
