package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestHumanSize(t *testing.T) {
	cases := map[int64]string{
		0:               "0 B",
		1023:            "1023 B",
		1024:            "1.0 KB",
		1536:            "1.5 KB",
		5 * 1024 * 1024: "5.0 MB",
	}
	for in, want := range cases {
		if got := humanSize(in); got != want {
			t.Errorf("humanSize(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestGetSysHealth(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.db"), make([]byte, 2048), 0o644); err != nil {
		t.Fatal(err)
	}

	h := GetSysHealth(dir, time.Now().Add(-time.Minute))
	if h.DataSize != "2.0 KB" {
		t.Errorf("Expected 2.0 KB, got %s", h.DataSize)
	}
	if h.Goroutines < 1 || h.Uptime < time.Minute {
		t.Errorf("Unexpected health snapshot %+v", h)
	}
}
