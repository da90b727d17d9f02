package trip

import "time"

// Condition is the coarse weather label driving category filtering.
type Condition string

const (
	Clear  Condition = "clear"
	Rain   Condition = "rain"
	Clouds Condition = "clouds"
	Snow   Condition = "snow"
)

// WeatherDay is the forecast the planner sees for one date.
type WeatherDay struct {
	Date            time.Time
	MeanTemperature float64
	HasTemperature  bool
	Precipitation   float64
	Condition       Condition
}

// WeatherFromForecast derives a WeatherDay from raw daily values. Any of the
// pointers may be nil when the provider had no data.
func WeatherFromForecast(date time.Time, maxTemp, minTemp, precipitation *float64) WeatherDay {
	w := DefaultWeather(date)
	if maxTemp != nil && minTemp != nil {
		w.MeanTemperature = (*maxTemp + *minTemp) / 2
		w.HasTemperature = true
	}
	if precipitation != nil {
		w.Precipitation = *precipitation
		if *precipitation > 0 {
			w.Condition = Rain
		}
	}
	return w
}

// DefaultWeather is used for dates with no forecast.
func DefaultWeather(date time.Time) WeatherDay {
	return WeatherDay{Date: Midnight(date), Condition: Clear}
}

// AllowedCategories lists the activity categories permitted under c. Parks
// are dropped on rainy days.
func AllowedCategories(c Condition) []Category {
	allowed := []Category{Museum, ArtGallery, Cafe, Restaurant}
	if c != Rain {
		allowed = append(allowed, Park)
	}
	return allowed
}
