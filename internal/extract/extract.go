// Package extract turns a free-form trip request into a validated
// trip.TripRequest by trying a fixed sequence of strategies.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ai-trip-planner/internal/llm"
	"ai-trip-planner/internal/shared"
	"ai-trip-planner/internal/trip"
)

// ErrExtractionFailed is returned when no strategy could read the request.
var ErrExtractionFailed = errors.New("could not extract trip parameters")

// Outcome is what a single strategy produced. Meta is set when the strategy
// spent completion tokens, whether or not it succeeded.
type Outcome struct {
	Request trip.TripRequest
	OK      bool
	Meta    *shared.AgentMeta
}

// Extractor is one parsing strategy.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, text string) Outcome
}

// Result reports the winning strategy alongside the request.
type Result struct {
	Request trip.TripRequest
	Stage   string
	Metas   []shared.AgentMeta
}

// Pipeline runs strategies in order and stops at the first success.
type Pipeline struct {
	stages []Extractor
	logger *slog.Logger
}

// NewPipeline builds a pipeline over the given strategies, in order.
func NewPipeline(logger *slog.Logger, stages ...Extractor) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{stages: stages, logger: logger}
}

// Stages lists the strategy names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Extract returns the first successful parse. Metas collects usage from every
// completion call made along the way, including failed ones.
func (p *Pipeline) Extract(ctx context.Context, text string) (Result, error) {
	var metas []shared.AgentMeta
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return Result{Metas: metas}, fmt.Errorf("extraction interrupted: %w", err)
		}
		out := stage.Extract(ctx, text)
		if out.Meta != nil {
			metas = append(metas, *out.Meta)
		}
		if out.OK {
			p.logger.Debug("trip parameters extracted",
				"stage", stage.Name(),
				"city", out.Request.City,
				"days", out.Request.DayCount(),
				"budget", out.Request.TotalBudget)
			return Result{Request: out.Request, Stage: stage.Name(), Metas: metas}, nil
		}
		p.logger.Debug("extraction stage did not match", "stage", stage.Name())
	}
	return Result{Metas: metas}, ErrExtractionFailed
}

// Clock supplies the reference time used to resolve the year of a date range.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// assemble runs the shared sub-parsers over the three raw fields.
func assemble(city, dates, budget string, now time.Time) (trip.TripRequest, bool) {
	start, end, ok := ParseDateRange(dates, now)
	if !ok {
		return trip.TripRequest{}, false
	}
	amount, ok := ParseBudget(budget)
	if !ok {
		return trip.TripRequest{}, false
	}
	req, err := trip.NewTripRequest(city, start, end, amount)
	if err != nil {
		return trip.TripRequest{}, false
	}
	return req, true
}

// Default is the production order: split, then phrase patterns, then the
// completion service when one is configured.
func Default(textGen llm.TextGenerator, clock Clock, logger *slog.Logger) *Pipeline {
	stages := []Extractor{
		&SplitExtractor{Clock: clock},
		&PatternExtractor{Clock: clock},
	}
	if textGen != nil {
		stages = append(stages, NewCompletionExtractor(textGen, clock, logger))
	}
	return NewPipeline(logger, stages...)
}
