// Package forecast reshapes OpenWeatherMap payloads into display records.
// All functions are pure and safe for concurrent use.
package forecast

import "math"

const (
	// MaxDays caps the number of daily summaries.
	MaxDays = 5
	// NoData is the description used when the provider sends none.
	NoData = "No data"

	kelvinOffset = 273.15
)

// Temperature returns the current temperature in whole degrees Celsius.
// ok is false when the payload has no main.temp.
func Temperature(c *CurrentConditions) (celsius int, ok bool) {
	if c == nil || c.Main == nil || c.Main.Temp == nil {
		return 0, false
	}
	return kelvinToCelsius(*c.Main.Temp), true
}

// Hourly maps every forecast entry to an HourlyRecord, preserving order.
func Hourly(resp *Response, f Formatter) []HourlyRecord {
	if resp == nil || len(resp.List) == 0 {
		return []HourlyRecord{}
	}
	out := make([]HourlyRecord, 0, len(resp.List))
	for i := range resp.List {
		e := &resp.List[i]
		ts := f.Timestamp(e.Dt)
		out = append(out, HourlyRecord{
			Time:        ts,
			TempMax:     celsiusOrZero(tempMax(e.Main)),
			TempMin:     celsiusOrZero(tempMin(e.Main)),
			Description: description(e.Weather),
			Humidity:    humidity(e.Main),
			WindSpeed:   windSpeed(e.Wind),
			LastUpdated: ts,
		})
	}
	return out
}

// Daily folds forecast entries into at most MaxDays per-day records. The first
// entry seen for a date wins; later entries for that date are dropped.
func Daily(resp *Response, f Formatter) []DailyRecord {
	if resp == nil || len(resp.List) == 0 {
		return []DailyRecord{}
	}
	out := make([]DailyRecord, 0, MaxDays)
	seen := make(map[string]struct{}, MaxDays)
	for i := range resp.List {
		if len(out) == MaxDays {
			break
		}
		e := &resp.List[i]
		date := f.Date(e.Dt)
		if _, ok := seen[date]; ok {
			continue
		}
		seen[date] = struct{}{}
		out = append(out, DailyRecord{
			Date:        date,
			TempMax:     celsiusOrZero(tempMax(e.Main)),
			TempMin:     celsiusOrZero(tempMin(e.Main)),
			Description: description(e.Weather),
			Humidity:    humidity(e.Main),
			WindSpeed:   windSpeed(e.Wind),
		})
	}
	return out
}

// kelvinToCelsius rounds half toward positive infinity.
func kelvinToCelsius(k float64) int {
	return int(math.Floor(k - kelvinOffset + 0.5))
}

func celsiusOrZero(k *float64) int {
	if k == nil {
		return 0
	}
	return kelvinToCelsius(*k)
}

func tempMax(m *Main) *float64 {
	if m == nil {
		return nil
	}
	return m.TempMax
}

func tempMin(m *Main) *float64 {
	if m == nil {
		return nil
	}
	return m.TempMin
}

func humidity(m *Main) float64 {
	if m == nil || m.Humidity == nil {
		return 0
	}
	return *m.Humidity
}

func windSpeed(w *Wind) float64 {
	if w == nil || w.Speed == nil {
		return 0
	}
	return *w.Speed
}

func description(conds []Condition) string {
	if len(conds) == 0 || conds[0].Description == nil || *conds[0].Description == "" {
		return NoData
	}
	return *conds[0].Description
}
