package extract

import (
	"context"
	"strings"
)

// SplitExtractor reads "city, dates, budget". Everything after the second
// comma belongs to the budget, so "5,000" survives the split.
type SplitExtractor struct {
	Clock Clock
}

func (e *SplitExtractor) Name() string { return "split" }

func (e *SplitExtractor) Extract(_ context.Context, text string) Outcome {
	parts := strings.Split(text, ",")
	if len(parts) < 3 {
		return Outcome{}
	}
	req, ok := assemble(parts[0], parts[1], strings.Join(parts[2:], ","), e.Clock.now())
	return Outcome{Request: req, OK: ok}
}
