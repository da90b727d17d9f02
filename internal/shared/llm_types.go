// Package shared holds the LLM accounting types passed between the
// completion clients, the planning stages that call them and the metrics store.
package shared

import (
	"time"
)

// Agent names recorded with execution metrics.
const (
	AgentExtractor = "Extractor"
	AgentEnricher  = "Enricher"
)

// TokenUsage tracks the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// AgentMeta holds operational metadata for one completion call made during a
// planning run.
type AgentMeta struct {
	AgentName string
	Usage     TokenUsage
	Latency   time.Duration
}

// NewAgentMeta stamps usage with the time elapsed since started.
func NewAgentMeta(agent string, usage TokenUsage, started time.Time) *AgentMeta {
	return &AgentMeta{AgentName: agent, Usage: usage, Latency: time.Since(started)}
}

// Exceeds reports whether the prompt was larger than limit tokens.
func (m AgentMeta) Exceeds(limit int) bool {
	return m.Usage.PromptTokens > limit
}
