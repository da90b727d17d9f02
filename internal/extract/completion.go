package extract

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"ai-trip-planner/internal/llm"
	"ai-trip-planner/internal/shared"
)

//go:embed completion_prompt.md
var completionPrompt string

var completionTemplate = template.Must(template.New("extract").Parse(completionPrompt))

type completionPromptData struct {
	Text  string
	Today string
}

// CompletionExtractor asks a text generator to pull the fields out of free
// text. Any failure of the service or of its reply counts as no match.
type CompletionExtractor struct {
	textGen llm.TextGenerator
	clock   Clock
	logger  *slog.Logger
}

func NewCompletionExtractor(textGen llm.TextGenerator, clock Clock, logger *slog.Logger) *CompletionExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompletionExtractor{textGen: textGen, clock: clock, logger: logger}
}

func (e *CompletionExtractor) Name() string { return "completion" }

func (e *CompletionExtractor) Extract(ctx context.Context, text string) Outcome {
	now := e.clock.now()
	prompt, err := buildCompletionPrompt(completionPromptData{
		Text:  text,
		Today: now.Format(time.DateOnly),
	})
	if err != nil {
		e.logger.Error("failed to build extraction prompt", "error", err)
		return Outcome{}
	}

	start := time.Now()
	resp, err := e.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		e.logger.Warn("completion service failed during extraction", "error", err)
		return Outcome{}
	}
	meta := shared.NewAgentMeta(shared.AgentExtractor, resp.Usage, start)

	fields, err := decodeFields(resp.Content)
	if err != nil {
		e.logger.Warn("unusable extraction reply", "error", err, "reply", resp.Content)
		return Outcome{Meta: meta}
	}

	req, ok := assemble(fields.City, fields.Dates, fields.Budget, now)
	return Outcome{Request: req, OK: ok, Meta: meta}
}

type extractedFields struct {
	City   string
	Dates  string
	Budget string
}

func decodeFields(reply string) (extractedFields, error) {
	obj, ok := FirstJSONObject(reply)
	if !ok {
		return extractedFields{}, fmt.Errorf("no JSON object in reply")
	}

	dec := json.NewDecoder(strings.NewReader(obj))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return extractedFields{}, fmt.Errorf("failed to decode reply object: %w", err)
	}

	return extractedFields{
		City:   scalarString(raw["city"]),
		Dates:  scalarString(raw["dates"]),
		Budget: scalarString(raw["budget"]),
	}, nil
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

// FirstJSONObject returns the first balanced {...} span in s. Braces inside
// string literals are ignored, so replies wrapped in prose or code fences
// still yield the object.
func FirstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	for start >= 0 {
		depth := 0
		inString, escaped := false, false
		for i := start; i < len(s); i++ {
			c := s[i]
			if inString {
				switch {
				case escaped:
					escaped = false
				case c == '\\':
					escaped = true
				case c == '"':
					inString = false
				}
				continue
			}
			switch c {
			case '"':
				inString = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
		// Unbalanced from here; try the next opening brace.
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

func buildCompletionPrompt(data completionPromptData) (string, error) {
	var buf bytes.Buffer
	if err := completionTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
