package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kjstillabower/weather-widget/internal/client"
	"github.com/kjstillabower/weather-widget/internal/forecast"
	"github.com/kjstillabower/weather-widget/internal/service"
	"github.com/kjstillabower/weather-widget/internal/testhelpers"
)

var utc = forecast.Formatter{Location: time.UTC}

func TestRun_PrintsCurrentAndDaily(t *testing.T) {
	fake := &testhelpers.FakeWeatherClient{Current: testhelpers.London(), Forecast: testhelpers.ThreeDays()}
	var out bytes.Buffer

	if err := run(context.Background(), &out, service.NewWeatherService(fake, utc), "London"); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"Weather in London, GB", "15 °C", "Partly cloudy", "1/1/2025, 12:00:00 PM", "1/3/2025", "Rainy", "3 hourly entries"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
}

func TestRun_CurrentFailureIsError(t *testing.T) {
	fake := &testhelpers.FakeWeatherClient{CurrentErr: client.ErrLocationNotFound}
	var out bytes.Buffer

	err := run(context.Background(), &out, service.NewWeatherService(fake, utc), "Atlantis")
	if !errors.Is(err, client.ErrLocationNotFound) {
		t.Errorf("run() error = %v, want ErrLocationNotFound", err)
	}
}

func TestRun_ForecastFailureReportedInline(t *testing.T) {
	fake := &testhelpers.FakeWeatherClient{Current: testhelpers.London(), ForecastErr: client.ErrUpstreamFailure}
	var out bytes.Buffer

	if err := run(context.Background(), &out, service.NewWeatherService(fake, utc), "London"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out.String(), "forecast unavailable") {
		t.Errorf("output missing forecast failure line:\n%s", out.String())
	}
}

func TestPrintCurrent_NoTemperature(t *testing.T) {
	var out bytes.Buffer
	printCurrent(&out, forecast.Summarize(&forecast.CurrentConditions{}, utc))
	if !strings.Contains(out.String(), "Temperature:  -") {
		t.Errorf("output = %q, want dash for missing temperature", out.String())
	}
	if !strings.Contains(out.String(), forecast.NoData) {
		t.Errorf("output missing %q", forecast.NoData)
	}
}
