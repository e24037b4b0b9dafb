package forecast

import "testing"

func TestSummarize(t *testing.T) {
	var cur CurrentConditions
	loadFixture(t, "current_london.json", &cur)

	s := Summarize(&cur, utc)
	if s.Temperature == nil || *s.Temperature != 15 {
		t.Errorf("Temperature = %v, want 15", s.Temperature)
	}
	if s.Place() != "London, GB" {
		t.Errorf("Place() = %q, want London, GB", s.Place())
	}
	if s.Humidity != 65 || s.WindSpeed != 5.2 {
		t.Errorf("Humidity/WindSpeed = %v/%v, want 65/5.2", s.Humidity, s.WindSpeed)
	}
	if s.Description != "Partly cloudy" {
		t.Errorf("Description = %q", s.Description)
	}
	if s.LastUpdated != "1/1/2025, 12:00:00 PM" {
		t.Errorf("LastUpdated = %q", s.LastUpdated)
	}
}

func TestSummarize_Absent(t *testing.T) {
	for name, in := range map[string]*CurrentConditions{
		"nil":   nil,
		"empty": {},
		"bare":  {Name: str("Nowhere"), Main: &Main{}},
	} {
		t.Run(name, func(t *testing.T) {
			s := Summarize(in, utc)
			if s.Temperature != nil {
				t.Errorf("Temperature = %v, want nil", *s.Temperature)
			}
			if s.Description != NoData || s.Humidity != 0 || s.WindSpeed != 0 || s.LastUpdated != "" {
				t.Errorf("unexpected defaults: %+v", s)
			}
		})
	}
}

func TestCurrentSummary_Place(t *testing.T) {
	tests := []struct {
		s    CurrentSummary
		want string
	}{
		{CurrentSummary{}, ""},
		{CurrentSummary{Location: "London"}, "London"},
		{CurrentSummary{Country: "GB"}, "GB"},
		{CurrentSummary{Location: "London", Country: "GB"}, "London, GB"},
	}
	for _, tt := range tests {
		if got := tt.s.Place(); got != tt.want {
			t.Errorf("Place() = %q, want %q", got, tt.want)
		}
	}
}
