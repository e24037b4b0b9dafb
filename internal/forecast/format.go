package forecast

import (
	"fmt"
	"time"
)

const (
	// DefaultDateTimeLayout mirrors the en-US locale date-time rendering.
	DefaultDateTimeLayout = "1/2/2006, 3:04:05 PM"
	// DefaultDateLayout mirrors the en-US locale date rendering.
	DefaultDateLayout = "1/2/2006"
)

// Formatter renders provider timestamps (unix seconds) for display.
// The zero value formats in time.Local with the default layouts.
type Formatter struct {
	Location       *time.Location
	DateTimeLayout string
	DateLayout     string
}

// NewFormatter returns a Formatter for the named IANA zone. An empty zone or
// "Local" uses the process local time.
func NewFormatter(zone, dateTimeLayout, dateLayout string) (Formatter, error) {
	loc := time.Local
	if zone != "" && zone != "Local" {
		l, err := time.LoadLocation(zone)
		if err != nil {
			return Formatter{}, fmt.Errorf("load display timezone %q: %w", zone, err)
		}
		loc = l
	}
	return Formatter{Location: loc, DateTimeLayout: dateTimeLayout, DateLayout: dateLayout}, nil
}

// Timestamp renders dt as a date-time string. A nil or zero dt yields "".
func (f Formatter) Timestamp(dt *int64) string {
	if dt == nil || *dt == 0 {
		return ""
	}
	return f.at(*dt).Format(f.dateTimeLayout())
}

// Date renders dt truncated to the calendar day in the display location.
// A nil or zero dt yields "".
func (f Formatter) Date(dt *int64) string {
	if dt == nil || *dt == 0 {
		return ""
	}
	return f.at(*dt).Format(f.dateLayout())
}

func (f Formatter) at(unix int64) time.Time {
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(unix, 0).In(loc)
}

func (f Formatter) dateTimeLayout() string {
	if f.DateTimeLayout == "" {
		return DefaultDateTimeLayout
	}
	return f.DateTimeLayout
}

func (f Formatter) dateLayout() string {
	if f.DateLayout == "" {
		return DefaultDateLayout
	}
	return f.DateLayout
}
