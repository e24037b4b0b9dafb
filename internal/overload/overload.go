// Package overload decides whether lookup traffic is beyond what the inbound
// rate limiter was sized for.
package overload

import (
	"time"

	"github.com/kjstillabower/weather-widget/internal/traffic"
)

// Threshold describes the capacity the limiter admits and the share of it
// that counts as overloaded.
type Threshold struct {
	Window       time.Duration
	RateLimitRPS int
	ThresholdPct int
}

// Enabled reports whether every field is set.
func (t Threshold) Enabled() bool {
	return t.Window > 0 && t.RateLimitRPS > 0 && t.ThresholdPct > 0
}

// Limit is the request count in Window above which the service is overloaded.
func (t Threshold) Limit() float64 {
	return float64(t.RateLimitRPS) * t.Window.Seconds() * float64(t.ThresholdPct) / 100
}

// Exceeded reports whether lookups (admitted and denied) in the window pass
// Limit. It is always false when the threshold is not Enabled.
func (t Threshold) Exceeded() bool {
	if !t.Enabled() {
		return false
	}
	return float64(traffic.RequestCount(t.Window)) > t.Limit()
}
