// Package route orders a day's candidate places into a short walking path.
package route

import (
	"ai-trip-planner/internal/trip"

	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Distance returns the great-circle distance between a and b in kilometers.
func Distance(a, b trip.Coordinates) float64 {
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lon)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// Order arranges places by greedy nearest neighbour, starting from the first
// element. Ties go to the place that came earlier in the input. The input
// slice is left untouched.
func Order(places []trip.Place) []trip.Place {
	if len(places) == 0 {
		return []trip.Place{}
	}

	remaining := make([]trip.Place, len(places)-1)
	copy(remaining, places[1:])

	ordered := make([]trip.Place, 0, len(places))
	ordered = append(ordered, places[0])

	for len(remaining) > 0 {
		last := ordered[len(ordered)-1].Location
		best := 0
		bestDist := Distance(last, remaining[0].Location)
		for i := 1; i < len(remaining); i++ {
			if d := Distance(last, remaining[i].Location); d < bestDist {
				best, bestDist = i, d
			}
		}
		ordered = append(ordered, remaining[best])
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return ordered
}
