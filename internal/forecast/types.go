package forecast

// Provider payloads. Every nested field is optional; a nil pointer means the
// provider omitted it.

// CurrentConditions is the OpenWeatherMap current weather payload.
type CurrentConditions struct {
	Name    *string     `json:"name,omitempty"`
	Sys     *Sys        `json:"sys,omitempty"`
	Main    *Main       `json:"main,omitempty"`
	Wind    *Wind       `json:"wind,omitempty"`
	Weather []Condition `json:"weather,omitempty"`
	Dt      *int64      `json:"dt,omitempty"`
}

// Response is the OpenWeatherMap 5 day / 3 hour forecast payload.
type Response struct {
	List []Entry `json:"list,omitempty"`
}

// Entry is a single forecast step.
type Entry struct {
	Dt      *int64      `json:"dt,omitempty"`
	Main    *Main       `json:"main,omitempty"`
	Wind    *Wind       `json:"wind,omitempty"`
	Weather []Condition `json:"weather,omitempty"`
}

type Sys struct {
	Country *string `json:"country,omitempty"`
}

// Main carries temperatures in Kelvin and humidity in percent.
type Main struct {
	Temp     *float64 `json:"temp,omitempty"`
	TempMax  *float64 `json:"temp_max,omitempty"`
	TempMin  *float64 `json:"temp_min,omitempty"`
	Humidity *float64 `json:"humidity,omitempty"`
}

type Wind struct {
	Speed *float64 `json:"speed,omitempty"`
}

type Condition struct {
	Description *string `json:"description,omitempty"`
}

// HourlyRecord is a display row for one forecast step.
type HourlyRecord struct {
	Time        string  `json:"time"`
	TempMax     int     `json:"temp_max"`
	TempMin     int     `json:"temp_min"`
	Description string  `json:"description"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	LastUpdated string  `json:"last_updated"`
}

// DailyRecord is a display row for one calendar day.
type DailyRecord struct {
	Date        string  `json:"date"`
	TempMax     int     `json:"temp_max"`
	TempMin     int     `json:"temp_min"`
	Description string  `json:"description"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
}
