// Command weather prints current conditions and the forecast for one city.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"github.com/kjstillabower/weather-widget/internal/client"
	"github.com/kjstillabower/weather-widget/internal/config"
	"github.com/kjstillabower/weather-widget/internal/forecast"
	"github.com/kjstillabower/weather-widget/internal/service"
	"github.com/kjstillabower/weather-widget/internal/validation"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "error: load .env: %v\n", err)
		os.Exit(1)
	}

	var (
		apiKey   = flag.String("key", "", "OpenWeatherMap API key (overrides WEATHER_API_KEY env)")
		city     = flag.String("city", "London", "City name to look up")
		baseURL  = flag.String("url", envOr("WEATHER_API_URL", config.DefaultWeatherAPIURL), "Provider base URL")
		envelope = flag.String("envelope", "", "Unwrap responses nested under this key")
		zone     = flag.String("tz", envOr("DISPLAY_TIMEZONE", "Local"), "IANA timezone for timestamps")
		timeout  = flag.Duration("timeout", 10*time.Second, "Overall request deadline")
	)
	flag.Parse()

	key := *apiKey
	if key == "" {
		key = os.Getenv("WEATHER_API_KEY")
	}
	if key == "" {
		fmt.Fprintln(os.Stderr, "error: API key is required. Use -key flag or set WEATHER_API_KEY.")
		os.Exit(1)
	}

	location, err := validation.ValidateLocation(*city, 1, 100)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	formatter, err := forecast.NewFormatter(*zone, "", "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var opts []client.Option
	if *envelope != "" {
		opts = append(opts, client.WithEnvelope(*envelope))
	}
	weatherClient, err := client.NewOpenWeatherClient(key, *baseURL, *timeout, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, os.Stdout, service.NewWeatherService(weatherClient, formatter), location); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// run fetches both payloads and writes the report. Current conditions are
// required; a failed forecast is reported inline.
func run(ctx context.Context, out io.Writer, svc *service.WeatherService, location string) error {
	cur, err := svc.CurrentConditions(ctx, location)
	if err != nil {
		return err
	}
	printCurrent(out, forecast.Summarize(cur, svc.Formatter()))

	fc, err := svc.Forecast(ctx, location)
	if err != nil {
		fmt.Fprintf(out, "forecast unavailable: %v\n", err)
		return nil
	}
	printForecast(out, fc)
	return nil
}

func printCurrent(out io.Writer, s forecast.CurrentSummary) {
	fmt.Fprintf(out, "\nWeather in %s\n", s.Place())
	fmt.Fprintln(out, "---------------------------------")

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	temp := "-"
	if s.Temperature != nil {
		temp = fmt.Sprintf("%d °C", *s.Temperature)
	}
	fmt.Fprintf(tw, "Temperature:\t%s\n", temp)
	fmt.Fprintf(tw, "Humidity:\t%g%%\n", s.Humidity)
	fmt.Fprintf(tw, "Wind:\t%g m/s\n", s.WindSpeed)
	fmt.Fprintf(tw, "Condition:\t%s\n", s.Description)
	fmt.Fprintf(tw, "Updated:\t%s\n", s.LastUpdated)
	tw.Flush()
	fmt.Fprintln(out)
}

func printForecast(out io.Writer, fc service.Forecast) {
	fmt.Fprintln(out, "Daily forecast")
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tHIGH\tLOW\tCONDITION\tHUMIDITY\tWIND")
	for _, d := range fc.Daily {
		fmt.Fprintf(tw, "%s\t%d °C\t%d °C\t%s\t%g%%\t%g m/s\n", d.Date, d.TempMax, d.TempMin, d.Description, d.Humidity, d.WindSpeed)
	}
	tw.Flush()
	fmt.Fprintf(out, "\n%d hourly entries available\n", len(fc.Hourly))
}
