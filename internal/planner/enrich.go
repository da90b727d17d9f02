package planner

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"text/template"
	"time"

	"ai-trip-planner/internal/extract"
	"ai-trip-planner/internal/llm"
	"ai-trip-planner/internal/shared"
	"ai-trip-planner/internal/trip"

	"github.com/PuerkitoBio/goquery"
)

//go:embed enrich_prompt.md
var enrichPrompt string

var enrichTemplate = template.Must(template.New("enrich").Parse(enrichPrompt))

type enrichPromptData struct {
	City   string
	Dates  string
	Budget int
}

var markupTag = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)

// Enricher asks the completion service for a few free-text suggestions to
// append to an itinerary.
type Enricher struct {
	textGen llm.TextGenerator
	logger  *slog.Logger
}

func NewEnricher(textGen llm.TextGenerator, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{textGen: textGen, logger: logger}
}

// Suggest returns the suggestions as plain text. Meta is non-nil whenever the
// service answered.
func (e *Enricher) Suggest(ctx context.Context, req trip.TripRequest) (string, *shared.AgentMeta, error) {
	var buf bytes.Buffer
	if err := enrichTemplate.Execute(&buf, enrichPromptData{
		City:   req.City,
		Dates:  extract.FormatDateRange(req.Start, req.End),
		Budget: req.TotalBudget,
	}); err != nil {
		return "", nil, fmt.Errorf("failed to build enrichment prompt: %w", err)
	}

	start := time.Now()
	resp, err := e.textGen.GenerateContent(ctx, buf.String())
	if err != nil {
		return "", nil, fmt.Errorf("enrichment request failed: %w", err)
	}
	meta := shared.NewAgentMeta(shared.AgentEnricher, resp.Usage, start)

	text, err := stripMarkup(resp.Content)
	if err != nil {
		e.logger.Warn("could not strip markup from enrichment", "error", err)
		text = resp.Content
	}
	return strings.TrimSpace(text), meta, nil
}

// stripMarkup flattens HTML that models sometimes return despite being asked
// for plain text.
func stripMarkup(s string) (string, error) {
	if !markupTag.MatchString(s) {
		return s, nil
	}
	s = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n", "</p>", "</p>\n", "</li>", "</li>\n").Replace(s)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return "", err
	}
	return doc.Text(), nil
}
