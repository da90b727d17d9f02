package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaClient_GenerateContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "mistral:7b-instruct",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "Сходите в баню"}}],
			"usage": {"prompt_tokens": 8, "completion_tokens": 4, "total_tokens": 12}
		}`))
	}))
	defer server.Close()

	client := NewOllamaClient(server.URL+"/v1", "mistral:7b-instruct")
	resp, err := client.GenerateContent(context.Background(), "идеи")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.Content != "Сходите в баню" {
		t.Errorf("Unexpected content: %q", resp.Content)
	}
	if resp.Usage.TotalTokens != 12 || resp.Usage.Model != "mistral:7b-instruct" {
		t.Errorf("Unexpected usage: %+v", resp.Usage)
	}
}

func TestOllamaClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"model not found"}}`, http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewOllamaClient(server.URL+"/v1", "missing").GenerateContent(context.Background(), "p")
	if err == nil {
		t.Fatal("Expected error from failing server")
	}
}
