package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-widget/internal/config"
	"github.com/kjstillabower/weather-widget/internal/testhelpers"
)

func testConfig() *config.Config {
	return &config.Config{
		RequestTimeout:    time.Second,
		RateLimitRPS:      100,
		RateLimitBurst:    100,
		DegradedWindow:    time.Minute,
		DegradedErrorPct:  50,
		DisplayTimezone:   "UTC",
		LocationMinLength: 1,
		LocationMaxLength: 100,
	}
}

func TestNewRouter_ServesWidgetFlow(t *testing.T) {
	fake := &testhelpers.FakeWeatherClient{Current: testhelpers.London(), Forecast: testhelpers.ThreeDays()}
	h, err := newRouter(testConfig(), fake, zap.NewNop())
	if err != nil {
		t.Fatalf("newRouter() error = %v", err)
	}
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := srv.Client().PostForm(srv.URL+"/search", url.Values{"city": {"London"}})
	if err != nil {
		t.Fatalf("POST /search: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	// The client follows the 303 back to GET /.
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), "London, GB") {
		t.Error("widget page does not show the searched city")
	}

	for _, path := range []string{"/health", "/metrics", "/weather/London", "/forecast/London", "/static/widget.css"} {
		resp, err := srv.Client().Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestNewRouter_InvalidTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.DisplayTimezone = "Nowhere/Special"
	if _, err := newRouter(cfg, &testhelpers.FakeWeatherClient{}, zap.NewNop()); err == nil {
		t.Error("newRouter() expected error for unknown timezone")
	}
}
