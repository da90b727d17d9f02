package trip

import (
	"fmt"
	"time"
)

// ScheduledVisit places a Place into a segment of a day. SegmentIndex is the
// position of the segment in the template, used for calendar start times.
type ScheduledVisit struct {
	Segment      DaySegment
	SegmentIndex int
	Place        Place
	Cost         int
}

// DayPlan is the schedule for one date. Visits are in segment order and some
// segments may be absent.
type DayPlan struct {
	Date    time.Time
	Weather WeatherDay
	Budget  int
	Visits  []ScheduledVisit
}

// Spent sums the cost of the day's visits.
func (d DayPlan) Spent() int {
	total := 0
	for _, v := range d.Visits {
		total += v.Cost
	}
	return total
}

// Itinerary is the result of one planning run.
type Itinerary struct {
	RunID      string
	Request    TripRequest
	Location   *Coordinates
	Hotels     []Place
	Days       []DayPlan
	Enrichment string
	CreatedAt  time.Time
}

// VisitCount is the number of scheduled visits across all days.
func (it *Itinerary) VisitCount() int {
	n := 0
	for _, d := range it.Days {
		n += len(d.Visits)
	}
	return n
}

// Describe renders the visit as a single line, e.g.
// "🍳 Завтрак: Кофемания (Кафе, ~700₽)".
func (v ScheduledVisit) Describe() string {
	return fmt.Sprintf("%s: %s (%s, ~%d₽)", v.Segment.Label, v.Place.Name, v.Place.Category.Label(), v.Cost)
}
