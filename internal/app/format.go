package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"ai-trip-planner/internal/extract"
	"ai-trip-planner/internal/trip"

	"github.com/samber/lo"
)

// MaxMessageLength is the longest chunk SplitMessage produces, kept under
// Telegram's 4096 character limit.
const MaxMessageLength = 4000

var weatherLabels = map[trip.Condition]string{
	trip.Rain:   "дождь 🌧️",
	trip.Clear:  "ясно ☀️",
	trip.Clouds: "облачно ⛅",
	trip.Snow:   "снег ❄️",
}

// FormatItinerary renders the itinerary as the plain-text chat reply.
func FormatItinerary(it *trip.Itinerary) string {
	req := it.Request
	var sb strings.Builder

	fmt.Fprintf(&sb, "🛫 План путешествия в %s с %s по %s\n",
		req.City, extract.FormatDay(req.Start), extract.FormatDay(req.End))
	fmt.Fprintf(&sb, "💰 Общий бюджет: %d ₽ (~%d ₽ в день)\n\n", req.TotalBudget, req.DailyBudget())

	if len(it.Hotels) > 0 {
		sb.WriteString("🏨 Предложенные отели:\n")
		lines := lo.Map(it.Hotels, func(h trip.Place, _ int) string {
			return fmt.Sprintf("  • %s (~%d₽/день)", h.Name, h.Cost)
		})
		sb.WriteString(strings.Join(lines, "\n"))
		sb.WriteString("\n\n")
	}

	for _, day := range it.Days {
		sb.WriteString(formatDay(day))
		sb.WriteString("\n")
	}

	if it.Enrichment != "" {
		sb.WriteString("🌟 Дополнительные рекомендации:\n")
		sb.WriteString(it.Enrichment)
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func formatDay(day trip.DayPlan) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 %s:\n", extract.FormatDay(day.Date))

	temp := "?"
	if day.Weather.HasTemperature {
		temp = fmt.Sprintf("%.0f", day.Weather.MeanTemperature)
	}
	label, ok := weatherLabels[day.Weather.Condition]
	if !ok {
		label = weatherLabels[trip.Clear]
	}
	fmt.Fprintf(&sb, "  Погода: %s°C, %s\n", temp, label)

	if len(day.Visits) == 0 {
		sb.WriteString("  Нет подходящих мест на сегодня.\n")
		return sb.String()
	}
	for _, v := range day.Visits {
		sb.WriteString("  ")
		sb.WriteString(v.Describe())
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  Итого за день: %d из %d ₽\n", day.Spent(), day.Budget)
	return sb.String()
}

// SplitMessage cuts text into chunks of at most limit characters, preferring
// line breaks. Lines longer than limit are cut mid-line.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = MaxMessageLength
	}
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var (
		parts   []string
		current strings.Builder
		size    int
	)
	flush := func() {
		if chunk := strings.TrimRight(current.String(), "\n"); chunk != "" {
			parts = append(parts, chunk)
		}
		current.Reset()
		size = 0
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		n := utf8.RuneCountInString(line)
		if size+n > limit {
			flush()
		}
		for n > limit {
			runes := []rune(line)
			parts = append(parts, string(runes[:limit]))
			line = string(runes[limit:])
			n -= limit
		}
		current.WriteString(line)
		size += n
	}
	flush()
	return parts
}
