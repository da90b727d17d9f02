package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-trip-planner/internal/llm"
	"ai-trip-planner/internal/shared"
	"ai-trip-planner/internal/trip"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTextGenerator struct {
	content string
	err     error
	prompt  string
}

func (m *mockTextGenerator) GenerateContent(_ context.Context, prompt string) (llm.ContentResponse, error) {
	m.prompt = prompt
	if m.err != nil {
		return llm.ContentResponse{}, m.err
	}
	return llm.ContentResponse{Content: m.content, Usage: shared.TokenUsage{TotalTokens: 42}}, nil
}

func enrichRequest(t *testing.T) trip.TripRequest {
	start := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	req, err := trip.NewTripRequest("Казань", start, start.AddDate(0, 0, 1), 5000)
	require.NoError(t, err)
	return req
}

func TestEnricher_Suggest(t *testing.T) {
	gen := &mockTextGenerator{content: "  1. Попробуйте эчпочмак.\n2. Прогулка по Кремлю.  "}
	text, meta, err := NewEnricher(gen, nil).Suggest(context.Background(), enrichRequest(t))

	require.NoError(t, err)
	assert.Equal(t, "1. Попробуйте эчпочмак.\n2. Прогулка по Кремлю.", text)
	require.NotNil(t, meta)
	assert.Equal(t, "Enricher", meta.AgentName)
	assert.Equal(t, 42, meta.Usage.TotalTokens)
	assert.Contains(t, gen.prompt, "Казань")
	assert.Contains(t, gen.prompt, "15 июня - 16 июня")
	assert.Contains(t, gen.prompt, "5000")
}

func TestEnricher_StripsMarkup(t *testing.T) {
	gen := &mockTextGenerator{content: "<ol><li>Эчпочмак</li><li><b>Кремль</b></li></ol>"}
	text, _, err := NewEnricher(gen, nil).Suggest(context.Background(), enrichRequest(t))

	require.NoError(t, err)
	assert.NotContains(t, text, "<")
	assert.Contains(t, text, "Эчпочмак")
	assert.Contains(t, text, "Кремль")
}

func TestEnricher_KeepsComparisons(t *testing.T) {
	out, err := stripMarkup("ночью температура < 5 градусов")
	require.NoError(t, err)
	assert.Equal(t, "ночью температура < 5 градусов", out)
}

func TestEnricher_ServiceError(t *testing.T) {
	gen := &mockTextGenerator{err: errors.New("quota")}
	text, meta, err := NewEnricher(gen, nil).Suggest(context.Background(), enrichRequest(t))
	assert.Error(t, err)
	assert.Empty(t, text)
	assert.Nil(t, meta)
}
