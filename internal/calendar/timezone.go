package calendar

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"ai-trip-planner/internal/trip"

	"github.com/ringsaturn/tzf"
)

// TimezoneResolver finds the IANA zone of a trip destination.
type TimezoneResolver struct {
	finder   tzf.F
	fallback *time.Location
}

// NewTimezoneResolver loads the offline boundary data. fallback is used when
// coordinates are unknown or fall outside every zone.
func NewTimezoneResolver(fallback string) (*TimezoneResolver, error) {
	loc, err := time.LoadLocation(fallback)
	if err != nil {
		return nil, fmt.Errorf("invalid fallback timezone %q: %w", fallback, err)
	}
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone data: %w", err)
	}
	return &TimezoneResolver{finder: finder, fallback: loc}, nil
}

// Locate returns the zone at c, or the fallback.
func (r *TimezoneResolver) Locate(c *trip.Coordinates) *time.Location {
	if c == nil || r.finder == nil {
		return r.fallback
	}
	name := r.finder.GetTimezoneName(c.Lon, c.Lat)
	if name == "" {
		return r.fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return r.fallback
	}
	return loc
}
