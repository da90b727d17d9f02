// Package geo holds the adapters for the public map and weather services the
// planner depends on: Nominatim for geocoding, Open-Meteo for forecasts and
// Overpass for points of interest.
package geo

import (
	"context"
	"time"

	"ai-trip-planner/internal/trip"
)

// Geocoder resolves a city name to coordinates.
type Geocoder interface {
	Resolve(ctx context.Context, city string) (trip.Coordinates, error)
}

// Forecaster returns daily forecasts for an inclusive date range.
type Forecaster interface {
	Forecast(ctx context.Context, at trip.Coordinates, start, end time.Time) ([]DailyForecast, error)
}

// Directory searches points of interest in a city.
type Directory interface {
	Search(ctx context.Context, city string, categories []trip.Category) ([]RawPlace, error)
}

// DailyForecast is one day as reported by the weather service. Nil values
// mean the service had no data for that field.
type DailyForecast struct {
	Date          time.Time
	MaxTemp       *float64
	MinTemp       *float64
	Precipitation *float64
}

// RawPlace is an unpriced directory record. Name may be empty.
type RawPlace struct {
	Name     string
	Category trip.Category
	Location trip.Coordinates
	Located  bool
}
