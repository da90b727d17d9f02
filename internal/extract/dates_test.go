package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDateRange(t *testing.T) {
	cases := []struct {
		in         string
		start, end time.Time
	}{
		{"15-16 июня", day(2025, 6, 15), day(2025, 6, 16)},
		{" 15 - 16 июня", day(2025, 6, 15), day(2025, 6, 16)},
		{"15–16 июня", day(2025, 6, 15), day(2025, 6, 16)},
		{"15 — 16 июня", day(2025, 6, 15), day(2025, 6, 16)},
		{"с 15 по 20 июня", day(2025, 6, 15), day(2025, 6, 20)},
		{"15 июня - 16 июня", day(2025, 6, 15), day(2025, 6, 16)},
		{"28 июня - 3 июля", day(2025, 6, 28), day(2025, 7, 3)},
		{"10 мая - 12", day(2025, 5, 10), day(2025, 5, 12)},
		{"1-3 Август", day(2025, 8, 1), day(2025, 8, 3)},
		{"from 4 to 6 july", day(2025, 7, 4), day(2025, 7, 6)},
		{"4-6 sep", day(2025, 9, 4), day(2025, 9, 6)},
		{"30 декабря - 2 января", day(2025, 12, 30), day(2026, 1, 2)},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			start, end, ok := ParseDateRange(tc.in, refNow)
			require.True(t, ok)
			assert.Equal(t, tc.start, start)
			assert.Equal(t, tc.end, end)
		})
	}
}

func TestParseDateRange_CrossYearWithSharedMonth(t *testing.T) {
	start, end, ok := ParseDateRange("30-2 января", refNow)
	require.True(t, ok)
	assert.Equal(t, start.Year()+1, end.Year())
	assert.Equal(t, day(2025, 1, 30), start)
	assert.Equal(t, day(2026, 1, 2), end)
}

func TestParseDateRange_Rejects(t *testing.T) {
	for _, in := range []string{
		"",
		"15-16",
		"завтра",
		"15-16 мартобря",
		"31 июня - 2 июля",
		"10-31 ноября",
		"0-2 мая",
	} {
		t.Run(in, func(t *testing.T) {
			_, _, ok := ParseDateRange(in, refNow)
			assert.False(t, ok)
		})
	}
}

func TestFormatDateRange_RoundTrip(t *testing.T) {
	ranges := [][2]time.Time{
		{day(2025, 6, 15), day(2025, 6, 16)},
		{day(2025, 1, 1), day(2025, 1, 31)},
		{day(2025, 2, 27), day(2025, 3, 2)},
		{day(2025, 12, 30), day(2026, 1, 2)},
	}
	for _, r := range ranges {
		s := FormatDateRange(r[0], r[1])
		start, end, ok := ParseDateRange(s, day(r[0].Year(), 1, 1))
		require.True(t, ok, s)
		assert.Equal(t, r[0], start, s)
		assert.Equal(t, r[1], end, s)
	}
	assert.Equal(t, "15 июня - 16 июня", FormatDateRange(day(2025, 6, 15), day(2025, 6, 16)))
	assert.Equal(t, "2 января", FormatDay(day(2026, 1, 2)))
}

func TestParseBudget(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{" 5000", 5000, true},
		{"5 000 ₽", 5000, true},
		{"5 000", 5000, true},
		{"5,000", 5000, true},
		{"бюджет 30000 рублей", 30000, true},
		{"15-16 июня, 5000", 5000, true},
		{"15-16 июня, 40", 0, false},
		{"40", 0, false},
		{"000", 0, false},
		{"", 0, false},
		{"99999999999999999999999", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseBudget(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
