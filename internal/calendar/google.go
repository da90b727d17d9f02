package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleCalendar inserts events through the Google Calendar API using a
// service account.
type GoogleCalendar struct {
	svc        *gcal.Service
	calendarID string
}

// NewGoogleCalendar authenticates with the service account credentials file.
func NewGoogleCalendar(ctx context.Context, credentialsFile, calendarID string) (*GoogleCalendar, error) {
	return NewGoogleCalendarWithOptions(ctx, calendarID,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarEventsScope),
	)
}

// NewGoogleCalendarWithOptions allows custom endpoints and HTTP clients.
func NewGoogleCalendarWithOptions(ctx context.Context, calendarID string, opts ...option.ClientOption) (*GoogleCalendar, error) {
	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleCalendar{svc: svc, calendarID: calendarID}, nil
}

func (g *GoogleCalendar) CreateEvent(ctx context.Context, userID, title string, start time.Time, duration time.Duration) error {
	zone := start.Location().String()
	ev := &gcal.Event{
		Summary: title,
		Start: &gcal.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: zone,
		},
		End: &gcal.EventDateTime{
			DateTime: start.Add(duration).Format(time.RFC3339),
			TimeZone: zone,
		},
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: map[string]string{"user_id": userID},
		},
	}
	if _, err := g.svc.Events.Insert(g.calendarID, ev).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to insert event %q: %w", title, err)
	}
	return nil
}
