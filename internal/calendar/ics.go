package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

const productID = "-//ai-trip-planner//trip-bot//RU"

// ICSWriter is an in-memory EventSink that renders an iCalendar document.
type ICSWriter struct {
	mu    sync.Mutex
	cal   *ics.Calendar
	count int
	now   func() time.Time
}

func NewICSWriter() *ICSWriter {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	return &ICSWriter{cal: cal, now: time.Now}
}

func (w *ICSWriter) CreateEvent(_ context.Context, userID, title string, start time.Time, duration time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	uid := uuid.NewSHA1(uuid.NameSpaceURL,
		[]byte(fmt.Sprintf("%s|%s|%d", userID, title, start.Unix()))).String()

	ev := w.cal.AddEvent(uid + "@ai-trip-planner")
	ev.SetDtStampTime(w.now())
	ev.SetStartAt(start)
	ev.SetEndAt(start.Add(duration))
	ev.SetSummary(title)
	w.count++
	return nil
}

// Len is the number of events written so far.
func (w *ICSWriter) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Bytes serializes the calendar.
func (w *ICSWriter) Bytes() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	return []byte(w.cal.Serialize())
}

// RenderICS builds an .ics document for the given events.
func RenderICS(ctx context.Context, userID string, events []Event) ([]byte, error) {
	w := NewICSWriter()
	if _, err := Export(ctx, w, userID, events); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}
