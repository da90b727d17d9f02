package planner

import (
	"strings"

	"ai-trip-planner/internal/geo"
	"ai-trip-planner/internal/trip"
)

// BuildPool prices raw directory records and removes duplicates by name.
// When a name repeats, the last record wins but the position of the first is
// kept. Records without a name or location are dropped.
func BuildPool(raw []geo.RawPlace) []trip.Place {
	index := make(map[string]int, len(raw))
	pool := make([]trip.Place, 0, len(raw))
	for _, r := range raw {
		name := strings.TrimSpace(r.Name)
		if name == "" || !r.Located {
			continue
		}
		p := trip.Place{
			Name:     name,
			Category: r.Category,
			Location: r.Location,
			Cost:     trip.PriceFor(r.Category),
		}
		if i, seen := index[name]; seen {
			pool[i] = p
			continue
		}
		index[name] = len(pool)
		pool = append(pool, p)
	}
	return pool
}
