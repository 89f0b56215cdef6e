package gemini

import (
	"context"
	"testing"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/llm"
)

func TestToContentsMapsRoles(t *testing.T) {
	contents := toContents([]llm.Message{
		llm.UserMessage("first question"),
		{Role: llm.RoleAssistant, Content: "first answer"},
		llm.UserMessage("follow up"),
	})
	if len(contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(contents))
	}
	wantRoles := []string{roleUser, roleModel, roleUser}
	for i, c := range contents {
		if c.Role != wantRoles[i] {
			t.Errorf("content %d role = %s; want %s", i, c.Role, wantRoles[i])
		}
	}
	if contents[1].Parts[0].Text != "first answer" {
		t.Errorf("unexpected text: %q", contents[1].Parts[0].Text)
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(context.Background(), Config{Model: "gemini-2.5-flash"}); err == nil {
		t.Error("expected an error without an api key")
	}
}
