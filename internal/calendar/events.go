// Package calendar exports itineraries as calendar events, either into an
// .ics file or straight into Google Calendar.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-trip-planner/internal/trip"
)

const (
	firstSlotHour = 9
	slotStep      = 2 * time.Hour
	eventDuration = time.Hour
)

// Event is one calendar entry derived from a scheduled visit.
type Event struct {
	Title    string
	Start    time.Time
	Duration time.Duration
}

// BuildEvents turns every visit into an hour-long event. A visit in the k-th
// segment of the daily template starts at 09:00 + 2k hours local time in loc.
func BuildEvents(it *trip.Itinerary, loc *time.Location) []Event {
	if loc == nil {
		loc = time.UTC
	}
	var events []Event
	for _, day := range it.Days {
		y, m, d := day.Date.Date()
		base := time.Date(y, m, d, firstSlotHour, 0, 0, 0, loc)
		for _, v := range day.Visits {
			events = append(events, Event{
				Title:    v.Describe(),
				Start:    base.Add(time.Duration(v.SegmentIndex) * slotStep),
				Duration: eventDuration,
			})
		}
	}
	return events
}

// EventSink stores calendar events on behalf of a user.
type EventSink interface {
	CreateEvent(ctx context.Context, userID, title string, start time.Time, duration time.Duration) error
}

// ExportError reports an export that stopped part way. Events before the
// failing one were created and are not rolled back.
type ExportError struct {
	Created int
	Total   int
	Err     error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("calendar export stopped after %d of %d events: %v", e.Created, e.Total, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// ErrNothingToExport is returned for itineraries without visits.
var ErrNothingToExport = errors.New("itinerary has no events")

// Export pushes events to sink in order and stops at the first failure.
func Export(ctx context.Context, sink EventSink, userID string, events []Event) (int, error) {
	if len(events) == 0 {
		return 0, ErrNothingToExport
	}
	for i, ev := range events {
		if err := sink.CreateEvent(ctx, userID, ev.Title, ev.Start, ev.Duration); err != nil {
			return i, &ExportError{Created: i, Total: len(events), Err: err}
		}
	}
	return len(events), nil
}
