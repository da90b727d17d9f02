package trip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewTripRequest(t *testing.T) {
	t.Run("derived values", func(t *testing.T) {
		req, err := NewTripRequest(" Москва ", date(2025, 6, 15), date(2025, 6, 16), 5000)
		require.NoError(t, err)
		assert.Equal(t, "Москва", req.City)
		assert.Equal(t, 2, req.DayCount())
		assert.Equal(t, 2500, req.DailyBudget())
		assert.Equal(t, []time.Time{date(2025, 6, 15), date(2025, 6, 16)}, req.Dates())
	})

	t.Run("daily budget rounds down", func(t *testing.T) {
		req, err := NewTripRequest("Казань", date(2025, 6, 1), date(2025, 6, 3), 1000)
		require.NoError(t, err)
		assert.Equal(t, 333, req.DailyBudget())
	})

	t.Run("single day", func(t *testing.T) {
		req, err := NewTripRequest("Казань", date(2025, 6, 1), date(2025, 6, 1), 1000)
		require.NoError(t, err)
		assert.Equal(t, 1, req.DayCount())
	})

	t.Run("clock part dropped", func(t *testing.T) {
		start := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
		req, err := NewTripRequest("Казань", start, date(2025, 6, 2), 1000)
		require.NoError(t, err)
		assert.Equal(t, date(2025, 6, 1), req.Start)
		assert.Equal(t, 2, req.DayCount())
	})

	t.Run("crosses new year", func(t *testing.T) {
		req, err := NewTripRequest("Сочи", date(2025, 12, 30), date(2026, 1, 2), 4000)
		require.NoError(t, err)
		assert.Equal(t, 4, req.DayCount())
	})

	cases := []struct {
		name   string
		city   string
		start  time.Time
		end    time.Time
		budget int
		want   error
	}{
		{"empty city", "  ", date(2025, 6, 1), date(2025, 6, 2), 100, ErrEmptyCity},
		{"zero budget", "Сочи", date(2025, 6, 1), date(2025, 6, 2), 0, ErrInvalidBudget},
		{"inverted", "Сочи", date(2025, 6, 2), date(2025, 6, 1), 100, ErrInvertedDates},
		{"missing", "Сочи", time.Time{}, date(2025, 6, 1), 100, ErrMissingDates},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTripRequest(tc.city, tc.start, tc.end, tc.budget)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestPriceFor(t *testing.T) {
	assert.Equal(t, 700, PriceFor(Cafe))
	assert.Equal(t, 2000, PriceFor(Restaurant))
	assert.Equal(t, 500, PriceFor(Museum))
	assert.Equal(t, 0, PriceFor(Park))
	assert.Equal(t, 500, PriceFor(ArtGallery))
	assert.Equal(t, 3000, PriceFor(Hotel))
	assert.Equal(t, DefaultPrice, PriceFor(Category("zoo")))
}

func TestWeatherFromForecast(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	d := date(2025, 6, 15)

	w := WeatherFromForecast(d, f(24), f(16), f(0))
	assert.Equal(t, Clear, w.Condition)
	assert.True(t, w.HasTemperature)
	assert.InDelta(t, 20.0, w.MeanTemperature, 1e-9)

	w = WeatherFromForecast(d, f(24), f(16), f(0.2))
	assert.Equal(t, Rain, w.Condition)

	w = WeatherFromForecast(d, nil, f(16), nil)
	assert.Equal(t, Clear, w.Condition)
	assert.False(t, w.HasTemperature)
}

func TestAllowedCategories(t *testing.T) {
	assert.NotContains(t, AllowedCategories(Rain), Park)
	assert.Contains(t, AllowedCategories(Clear), Park)
	assert.Contains(t, AllowedCategories(Snow), Park)
	assert.Contains(t, AllowedCategories(Rain), Museum)
}

func TestDefaultSegments(t *testing.T) {
	require.Len(t, DefaultSegments, 5)
	assert.True(t, DefaultSegments[0].Accepts(Cafe))
	assert.False(t, DefaultSegments[0].Accepts(Museum))
	assert.True(t, DefaultSegments[4].Accepts(Park))
	for _, s := range DefaultSegments {
		assert.False(t, s.Accepts(Hotel), s.Key)
	}
}

func TestDayPlanSpent(t *testing.T) {
	d := DayPlan{Visits: []ScheduledVisit{{Cost: 700}, {Cost: 500}, {Cost: 0}}}
	assert.Equal(t, 1200, d.Spent())
	it := &Itinerary{Days: []DayPlan{d, {}}}
	assert.Equal(t, 3, it.VisitCount())
}

func TestScheduledVisitDescribe(t *testing.T) {
	v := ScheduledVisit{
		Segment: DefaultSegments[0],
		Place:   Place{Name: "Кофемания", Category: Cafe},
		Cost:    700,
	}
	assert.Equal(t, "🍳 Завтрак: Кофемания (Кафе, ~700₽)", v.Describe())
	assert.Equal(t, "Zoo", Category("zoo").Label())
}
