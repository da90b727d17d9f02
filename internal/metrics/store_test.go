package metrics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"ai-trip-planner/internal/database"
	"ai-trip-planner/internal/shared"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "metrics.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db.SQL)
}

func TestStore_RecordAndDailyUsage(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	meta := shared.AgentMeta{
		AgentName: "Extractor",
		Usage:     shared.TokenUsage{PromptTokens: 100, CompletionTokens: 20, Model: "llama"},
		Latency:   300 * time.Millisecond,
	}
	if err := store.RecordMeta(ctx, "run-1", meta); err != nil {
		t.Fatalf("RecordMeta failed: %v", err)
	}
	if err := store.RecordMeta(ctx, "run-1", shared.AgentMeta{AgentName: "Enricher"}); err != nil {
		t.Fatalf("RecordMeta with empty usage failed: %v", err)
	}
	if err := store.Record(ctx, ExecutionMetric{AgentName: "Enricher", PromptTokens: 50, CompletionTokens: 80}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	usage, err := store.GetDailyUsage(ctx, 7)
	if err != nil {
		t.Fatalf("GetDailyUsage failed: %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("Expected one day of usage, got %d", len(usage))
	}
	got := usage[0]
	if got.TotalExecution != 2 || got.TotalPrompt != 150 || got.TotalCompletion != 100 {
		t.Errorf("Unexpected totals %+v", got)
	}
	if got.Date != time.Now().UTC().Format("2006-01-02") {
		t.Errorf("Unexpected date %q", got.Date)
	}
}

func TestStore_Cleanup(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	old := ExecutionMetric{AgentName: "Extractor", PromptTokens: 1, Timestamp: time.Now().AddDate(0, 0, -40)}
	fresh := ExecutionMetric{AgentName: "Extractor", PromptTokens: 1}
	for _, m := range []ExecutionMetric{old, old, fresh} {
		if err := store.Record(ctx, m); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	removed, err := store.Cleanup(ctx, 30)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("Expected 2 rows removed, got %d", removed)
	}

	usage, _ := store.GetDailyUsage(ctx, 365)
	if len(usage) != 1 || usage[0].TotalExecution != 1 {
		t.Errorf("Expected only the fresh metric to remain, got %+v", usage)
	}
}
