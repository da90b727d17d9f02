// Package planner builds day-by-day itineraries from a candidate pool.
package planner

import (
	"math/rand/v2"
	"sync"

	"ai-trip-planner/internal/route"
	"ai-trip-planner/internal/trip"

	"github.com/samber/lo"
)

// Synthesizer fills each trip day with visits. Shuffling draws from a seeded
// generator so runs can be replayed; each run gets its own stream so
// concurrent runs never share mutable state.
type Synthesizer struct {
	mu       sync.Mutex
	master   *rand.Rand
	segments []trip.DaySegment
}

// NewSynthesizer creates a synthesizer. A zero seed picks a random one.
func NewSynthesizer(seed uint64) *Synthesizer {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Synthesizer{
		master:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		segments: trip.DefaultSegments,
	}
}

func (s *Synthesizer) runRand() *rand.Rand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rand.New(rand.NewPCG(s.master.Uint64(), s.master.Uint64()))
}

// Synthesize plans every day of req in chronological order. Places already
// in state are skipped and every scheduled place is added to it, so no place
// appears twice in the result. Each day spends at most req.DailyBudget();
// leftovers do not carry over.
func (s *Synthesizer) Synthesize(req trip.TripRequest, weather map[string]trip.WeatherDay, pool []trip.Place, state *State) []trip.DayPlan {
	rng := s.runRand()
	dailyBudget := req.DailyBudget()

	days := make([]trip.DayPlan, 0, req.DayCount())
	for _, date := range req.Dates() {
		w, ok := weather[trip.DateKey(date)]
		if !ok {
			w = trip.DefaultWeather(date)
		}
		allowed := trip.AllowedCategories(w.Condition)

		candidates := lo.Filter(pool, func(p trip.Place, _ int) bool {
			return lo.Contains(allowed, p.Category) && !state.IsUsed(p.Name)
		})
		rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		ordered := route.Order(candidates)

		day := trip.DayPlan{Date: date, Weather: w, Budget: dailyBudget}
		remaining := dailyBudget
		for idx, seg := range s.segments {
			for _, p := range ordered {
				if !seg.Accepts(p.Category) || state.IsUsed(p.Name) || p.Cost > remaining {
					continue
				}
				day.Visits = append(day.Visits, trip.ScheduledVisit{
					Segment:      seg,
					SegmentIndex: idx,
					Place:        p,
					Cost:         p.Cost,
				})
				state.MarkUsed(p.Name)
				remaining -= p.Cost
				break
			}
		}
		days = append(days, day)
	}
	return days
}
