package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewWithWriter_ProductionEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)
	log.Info("planned", "city", "Москва")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["city"] != "Москва" {
		t.Errorf("Expected city attribute, got %v", entry["city"])
	}
}

func TestNewWithWriter_ProductionDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("production", &buf).Debug("noise")
	if buf.Len() != 0 {
		t.Errorf("Expected debug to be filtered, got %q", buf.String())
	}
}

func TestNewWithWriter_DevelopmentIsVerbose(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("", &buf).Debug("details", "stage", "split")
	if !strings.Contains(buf.String(), "details") {
		t.Errorf("Expected debug line in development, got %q", buf.String())
	}
}
