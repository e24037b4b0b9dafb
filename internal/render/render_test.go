package render

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kjstillabower/weather-widget/internal/forecast"
	"github.com/kjstillabower/weather-widget/internal/testhelpers"
	"github.com/kjstillabower/weather-widget/internal/widget"
)

var utc = forecast.Formatter{Location: time.UTC}

func TestPage_Loading(t *testing.T) {
	var buf bytes.Buffer
	if err := Page(&buf, widget.View{Formatter: utc}, ""); err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	html := buf.String()
	for _, want := range []string{
		`class="app-container"`,
		"<h1>WEATHER APP</h1>",
		`class="search-input"`,
		`class="search-button"`,
		`class="search-bar"`,
		`<p class="loading">Loading...</p>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(html, `class="hourly"`) {
		t.Error("hourly section rendered without data")
	}
}

func TestPage_WithData(t *testing.T) {
	resp := testhelpers.ThreeDays()
	v := widget.View{
		City:           "London",
		WeatherData:    testhelpers.London(),
		HourlyForecast: forecast.Hourly(resp, utc),
		DailyForecast:  forecast.Daily(resp, utc),
		Formatter:      utc,
	}

	var buf bytes.Buffer
	if err := Page(&buf, v, ""); err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	html := buf.String()
	for _, want := range []string{
		"London, GB",
		"15&deg;C",
		"Partly cloudy",
		"65%",
		"5.2 m/s",
		"1/1/2025, 12:00:00 PM",
		"1/3/2025",
		"Rainy",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(html, "Loading...") {
		t.Error("loading shown with data present")
	}
}

func TestPage_SparseCurrentConditions(t *testing.T) {
	name := "Nowhere"
	v := widget.View{WeatherData: &forecast.CurrentConditions{Name: &name}, Formatter: utc}

	var buf bytes.Buffer
	if err := Page(&buf, v, "location not found"); err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, forecast.NoData) {
		t.Errorf("expected %q for missing description", forecast.NoData)
	}
	if !strings.Contains(html, "&ndash;") {
		t.Error("expected placeholder for missing temperature")
	}
	if !strings.Contains(html, `<p class="error">location not found</p>`) {
		t.Error("expected error message")
	}
}

func TestPage_EscapesInput(t *testing.T) {
	var buf bytes.Buffer
	_ = Page(&buf, widget.View{City: `"><script>`}, "")
	if strings.Contains(buf.String(), "<script>") {
		t.Error("city value was not escaped")
	}
}

func TestStylesheetHandler(t *testing.T) {
	w := httptest.NewRecorder()
	StylesheetHandler().ServeHTTP(w, httptest.NewRequest("GET", "/static/widget.css", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Content-Type = %q", ct)
	}
}
