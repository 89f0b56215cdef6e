package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/llm"
	"github.com/tmc/langchaingo/llms"
)

func TestToMessageContentMapsRoles(t *testing.T) {
	content := toMessageContent([]llm.Message{
		llm.SystemMessage("be brief"),
		llm.UserMessage("hi"),
		{Role: llm.RoleAssistant, Content: "hello"},
	})
	want := []llms.ChatMessageType{llms.ChatMessageTypeSystem, llms.ChatMessageTypeHuman, llms.ChatMessageTypeAI}
	if len(content) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(content))
	}
	for i, c := range content {
		if c.Role != want[i] {
			t.Errorf("message %d role = %s; want %s", i, c.Role, want[i])
		}
	}
}

func TestChatAgainstLocalServer(t *testing.T) {
	var path string
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"mistral","created_at":"2025-01-01T00:00:00Z",` +
			`"message":{"role":"assistant","content":"Connection successful"},"done":true}`))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL, Model: "mistral", Temperature: 0.7, MaxTokens: 2000})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	if path != "/api/chat" {
		t.Errorf("path = %q; want /api/chat", path)
	}
	if body["model"] != "mistral" {
		t.Errorf("model = %v; want mistral", body["model"])
	}
	if client.Name() != "ollama" || client.Model() != "mistral" {
		t.Errorf("unexpected identity %s/%s", client.Name(), client.Model())
	}
}
