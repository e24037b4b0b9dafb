package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// TestMetrics_Usable verifies label dimensions match usage in client, http and widget.
func TestMetrics_Usable(t *testing.T) {
	HTTPRequestsTotal.WithLabelValues("GET", "/weather/{location}", "2xx").Inc()
	HTTPRequestDuration.WithLabelValues("GET", "/forecast/{location}").Observe(0.01)
	WeatherAPICallsTotal.WithLabelValues("weather", "success").Inc()
	WeatherAPICallsTotal.WithLabelValues("forecast", "error").Inc()
	WeatherAPIDuration.WithLabelValues("forecast", "success").Observe(0.1)
	WeatherAPIErrorsTotal.WithLabelValues("weather", "timeout").Inc()
	WidgetSearchesTotal.WithLabelValues("partial").Inc()
	RecordForecastRecords(40, 5)
}

func TestSetTrackedLocations_and_RecordWeatherQuery(t *testing.T) {
	SetTrackedLocations([]string{"london", "Paris "})
	defer SetTrackedLocations(nil)

	RecordWeatherQuery("London")
	RecordWeatherQuery("unknown-city")

	if got := MetricLocationLabel("paris"); got != "paris" {
		t.Errorf("MetricLocationLabel(paris) = %q, want paris", got)
	}
	if got := MetricLocationLabel("unknown-city"); got != "other" {
		t.Errorf("MetricLocationLabel(unknown-city) = %q, want other", got)
	}
}

func TestMetricsHandler_ServesPrometheusFormat(t *testing.T) {
	RegisterTrafficGauges(time.Minute)
	HTTPRequestsTotal.WithLabelValues("GET", "/", "2xx").Inc()

	w := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Errorf("MetricsHandler status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	for _, name := range []string{"httpRequestsTotal", "requestsInWindow", "rateLimitRejectsInWindow"} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}
