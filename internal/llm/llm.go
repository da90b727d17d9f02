package llm

import (
	"context"
	"fmt"

	"ai-trip-planner/internal/config"
	"ai-trip-planner/internal/shared"
)

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}

// New builds the text generator selected by cfg.LLMProvider. The returned
// close function is always safe to call.
func New(ctx context.Context, cfg *config.Config) (TextGenerator, func() error, error) {
	noop := func() error { return nil }
	switch cfg.LLMProvider {
	case config.ProviderGroq:
		return NewGroqClient(cfg.GroqAPIKey), noop, nil
	case config.ProviderGemini:
		gen, err := NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, noop, err
		}
		return gen, gen.Close, nil
	case config.ProviderOllama:
		return NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel), noop, nil
	default:
		return nil, noop, fmt.Errorf("unsupported LLM provider %q", cfg.LLMProvider)
	}
}
