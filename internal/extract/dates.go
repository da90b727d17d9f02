package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var monthsGenitive = [12]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

var monthNames = buildMonthNames()

func buildMonthNames() map[string]time.Month {
	names := map[string]time.Month{}
	nominative := []string{
		"январь", "февраль", "март", "апрель", "май", "июнь",
		"июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь",
	}
	for i := 0; i < 12; i++ {
		m := time.Month(i + 1)
		names[monthsGenitive[i]] = m
		names[nominative[i]] = m
		en := strings.ToLower(m.String())
		names[en] = m
		names[en[:3]] = m
	}
	names["sept"] = time.September
	return names
}

var (
	rangeWords  = regexp.MustCompile(`(^|\s)(?:по|до|to|through|till|until)(\s|$)`)
	fromWords   = regexp.MustCompile(`(^|\s)(?:с|со|from)\s+`)
	rangeFormat = regexp.MustCompile(`(\d{1,2})\s*(\p{L}+)?\.?\s*-\s*(\d{1,2})\s*(\p{L}+)?`)
)

// ParseDateRange reads a "D1 [month] - D2 month" range. A month given on only
// one side applies to both. The year is taken from now; a range whose end
// falls before its start is assumed to cross into the next year.
func ParseDateRange(text string, now time.Time) (time.Time, time.Time, bool) {
	s := strings.ToLower(text)
	s = strings.NewReplacer("–", "-", "—", "-", "‒", "-").Replace(s)
	s = rangeWords.ReplaceAllString(s, "$1-$2")
	s = fromWords.ReplaceAllString(s, "$1")

	m := rangeFormat.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, time.Time{}, false
	}

	day1, _ := strconv.Atoi(m[1])
	day2, _ := strconv.Atoi(m[3])
	name1, name2 := m[2], m[4]
	if name1 == "" {
		name1 = name2
	}
	if name2 == "" {
		name2 = name1
	}
	if name1 == "" {
		return time.Time{}, time.Time{}, false
	}

	month1, ok1 := monthNames[name1]
	month2, ok2 := monthNames[name2]
	if !ok1 || !ok2 {
		return time.Time{}, time.Time{}, false
	}

	year := now.Year()
	start, ok := calendarDate(year, month1, day1)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := calendarDate(year, month2, day2)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		if end, ok = calendarDate(year+1, month2, day2); !ok {
			return time.Time{}, time.Time{}, false
		}
	}
	return start, end, true
}

// calendarDate rejects days that time.Date would silently roll over.
func calendarDate(year int, month time.Month, day int) (time.Time, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if day < 1 || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// FormatDateRange renders a range the way ParseDateRange reads it back.
func FormatDateRange(start, end time.Time) string {
	return fmt.Sprintf("%d %s - %d %s",
		start.Day(), monthsGenitive[start.Month()-1],
		end.Day(), monthsGenitive[end.Month()-1])
}

// FormatDay renders a single date with a genitive month, e.g. "15 июня".
func FormatDay(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), monthsGenitive[t.Month()-1])
}
