package shared

import (
	"testing"
	"time"
)

func TestNewAgentMeta(t *testing.T) {
	started := time.Now().Add(-50 * time.Millisecond)
	meta := NewAgentMeta(AgentEnricher, TokenUsage{PromptTokens: 10, Model: "m"}, started)

	if meta.AgentName != "Enricher" || meta.Usage.Model != "m" {
		t.Errorf("Unexpected meta: %+v", meta)
	}
	if meta.Latency < 50*time.Millisecond {
		t.Errorf("Expected latency of at least 50ms, got %v", meta.Latency)
	}
}

func TestAgentMetaExceeds(t *testing.T) {
	meta := AgentMeta{Usage: TokenUsage{PromptTokens: 4000}}
	if meta.Exceeds(4000) {
		t.Error("A prompt at the limit must not count as exceeding it")
	}
	if !meta.Exceeds(3999) {
		t.Error("Expected prompt above the limit to exceed it")
	}
}
