package trip

import (
	"errors"
	"strings"
	"time"
)

// Validation errors returned by NewTripRequest.
var (
	ErrEmptyCity     = errors.New("city is empty")
	ErrInvalidBudget = errors.New("budget must be positive")
	ErrInvertedDates = errors.New("end date is before start date")
	ErrMissingDates  = errors.New("dates are missing")
)

// TripRequest is the validated input to a planning run. Create it with
// NewTripRequest; the zero value is not a valid request.
type TripRequest struct {
	City        string
	Start       time.Time
	End         time.Time
	TotalBudget int
}

// NewTripRequest validates and normalizes its arguments. Dates are truncated
// to midnight UTC so that day arithmetic is exact.
func NewTripRequest(city string, start, end time.Time, budget int) (TripRequest, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return TripRequest{}, ErrEmptyCity
	}
	if budget <= 0 {
		return TripRequest{}, ErrInvalidBudget
	}
	if start.IsZero() || end.IsZero() {
		return TripRequest{}, ErrMissingDates
	}
	start, end = Midnight(start), Midnight(end)
	if end.Before(start) {
		return TripRequest{}, ErrInvertedDates
	}
	return TripRequest{City: city, Start: start, End: end, TotalBudget: budget}, nil
}

// DayCount is the inclusive number of calendar days in the trip.
func (r TripRequest) DayCount() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// DailyBudget is the per-day activity cap, rounded down.
func (r TripRequest) DailyBudget() int {
	return r.TotalBudget / r.DayCount()
}

// Dates lists every trip day in chronological order.
func (r TripRequest) Dates() []time.Time {
	n := r.DayCount()
	dates := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, r.Start.AddDate(0, 0, i))
	}
	return dates
}

// Midnight drops the clock part of t, keeping its calendar date, in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey is the map key used for per-day lookups such as weather.
func DateKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
