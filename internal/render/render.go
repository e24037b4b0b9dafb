// Package render draws the widget view as HTML.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/kjstillabower/weather-widget/internal/forecast"
	"github.com/kjstillabower/weather-widget/internal/widget"
)

//go:embed templates/widget.html templates/widget.css
var assets embed.FS

var page = template.Must(template.ParseFS(assets, "templates/widget.html"))

type pageData struct {
	widget.View
	Current forecast.CurrentSummary
	Error   string
}

// Page writes the widget page for v. errMsg, when non-empty, is shown above
// the results.
func Page(w io.Writer, v widget.View, errMsg string) error {
	data := pageData{
		View:    v,
		Current: forecast.Summarize(v.WeatherData, v.Formatter),
		Error:   errMsg,
	}
	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return fmt.Errorf("render widget: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// StylesheetHandler serves the widget stylesheet.
func StylesheetHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		css, err := assets.ReadFile("templates/widget.css")
		if err != nil {
			http.Error(w, "stylesheet unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		_, _ = w.Write(css)
	})
}
