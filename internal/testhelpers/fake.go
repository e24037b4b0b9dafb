// Package testhelpers holds fakes shared by handler, service and widget tests.
package testhelpers

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/kjstillabower/weather-widget/internal/forecast"
)

// FakeWeatherClient is an in-memory client.WeatherClient.
// Block, when set, holds every fetch until it is closed or ctx is done.
type FakeWeatherClient struct {
	Current     *forecast.CurrentConditions
	Forecast    *forecast.Response
	CurrentErr  error
	ForecastErr error
	ValidateErr error
	Block       chan struct{}

	CurrentCalls  atomic.Int32
	ForecastCalls atomic.Int32

	mu        sync.Mutex
	locations []string
}

func (f *FakeWeatherClient) GetCurrentConditions(ctx context.Context, location string) (*forecast.CurrentConditions, error) {
	f.CurrentCalls.Add(1)
	f.record(location)
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.CurrentErr != nil {
		return nil, f.CurrentErr
	}
	return f.Current, nil
}

func (f *FakeWeatherClient) GetForecast(ctx context.Context, location string) (*forecast.Response, error) {
	f.ForecastCalls.Add(1)
	f.record(location)
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.ForecastErr != nil {
		return nil, f.ForecastErr
	}
	return f.Forecast, nil
}

func (f *FakeWeatherClient) ValidateAPIKey(ctx context.Context) error {
	return f.ValidateErr
}

// Locations returns every location requested so far.
func (f *FakeWeatherClient) Locations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.locations...)
}

func (f *FakeWeatherClient) record(location string) {
	f.mu.Lock()
	f.locations = append(f.locations, location)
	f.mu.Unlock()
}

func (f *FakeWeatherClient) wait(ctx context.Context) error {
	if f.Block == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-f.Block:
		return nil
	}
}

// London returns a current-conditions payload for London at 288.15K.
func London() *forecast.CurrentConditions {
	name, country, desc := "London", "GB", "Partly cloudy"
	temp, hum, wind := 288.15, 65.0, 5.2
	dt := int64(1735732800)
	return &forecast.CurrentConditions{
		Name:    &name,
		Sys:     &forecast.Sys{Country: &country},
		Main:    &forecast.Main{Temp: &temp, Humidity: &hum},
		Wind:    &forecast.Wind{Speed: &wind},
		Weather: []forecast.Condition{{Description: &desc}},
		Dt:      &dt,
	}
}

// ThreeDays returns a forecast with one entry on each of three consecutive
// UTC days, starting 2025-01-01 12:00.
func ThreeDays() *forecast.Response {
	descs := []string{"Clear", "Cloudy", "Rainy"}
	resp := &forecast.Response{}
	for i := range descs {
		dt := int64(1735732800 + i*86400)
		maxK, minK, hum, wind := 290.0+float64(i), 280.0, 60.0, 4.0
		desc := descs[i]
		resp.List = append(resp.List, forecast.Entry{
			Dt:      &dt,
			Main:    &forecast.Main{TempMax: &maxK, TempMin: &minK, Humidity: &hum},
			Wind:    &forecast.Wind{Speed: &wind},
			Weather: []forecast.Condition{{Description: &desc}},
		})
	}
	return resp
}
