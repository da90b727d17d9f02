package llm

import (
	"context"
	"fmt"
	"strings"

	"ai-trip-planner/internal/shared"

	"github.com/openai/openai-go"
	oaioption "github.com/openai/openai-go/option"
)

// OllamaClient talks to a local Ollama server through its OpenAI-compatible
// chat completions endpoint.
type OllamaClient struct {
	client openai.Client
	model  string
}

// NewOllamaClient creates a client for baseURL (e.g. http://localhost:11434/v1).
func NewOllamaClient(baseURL, model string) *OllamaClient {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	client := openai.NewClient(
		oaioption.WithBaseURL(baseURL),
		oaioption.WithAPIKey("ollama"),
		oaioption.WithMaxRetries(0),
	)
	return &OllamaClient{client: client, model: model}
}

// GenerateContent sends a prompt to the local model and returns the generated text.
func (c *OllamaClient) GenerateContent(ctx context.Context, prompt string) (ContentResponse, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.5),
	})
	if err != nil {
		return ContentResponse{}, fmt.Errorf("ollama completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ContentResponse{}, fmt.Errorf("no content generated")
	}

	return ContentResponse{
		Content: resp.Choices[0].Message.Content,
		Usage: shared.TokenUsage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
			Model:            c.model,
		},
	}, nil
}
