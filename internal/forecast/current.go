package forecast

// CurrentSummary is the display form of a current-conditions payload.
type CurrentSummary struct {
	Location    string  `json:"location"`
	Country     string  `json:"country,omitempty"`
	Temperature *int    `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	Description string  `json:"description"`
	LastUpdated string  `json:"lastUpdated"`
}

// Place renders "Name, CC", degrading to whichever part is present.
func (s CurrentSummary) Place() string {
	switch {
	case s.Location == "":
		return s.Country
	case s.Country == "":
		return s.Location
	}
	return s.Location + ", " + s.Country
}

// Summarize applies the same defaults as the forecast reducers: absent
// temperature stays nil, numbers default to 0, description to NoData.
func Summarize(c *CurrentConditions, f Formatter) CurrentSummary {
	s := CurrentSummary{Description: NoData}
	if c == nil {
		return s
	}
	if t, ok := Temperature(c); ok {
		s.Temperature = &t
	}
	if c.Name != nil {
		s.Location = *c.Name
	}
	if c.Sys != nil && c.Sys.Country != nil {
		s.Country = *c.Sys.Country
	}
	s.Humidity = humidity(c.Main)
	s.WindSpeed = windSpeed(c.Wind)
	s.Description = description(c.Weather)
	s.LastUpdated = f.Timestamp(c.Dt)
	return s
}
