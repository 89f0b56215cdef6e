package providers

import (
	"context"
	"testing"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
)

func TestNewBuildsConfiguredProvider(t *testing.T) {
	tests := []struct {
		name     string
		settings config.LLMSettings
		wantName string
		wantErr  bool
	}{
		{
			name:     "groq",
			settings: config.LLMSettings{Provider: config.ProviderGroq, APIKey: "gsk", Model: config.DefaultModelName},
			wantName: config.ProviderGroq,
		},
		{
			name:     "ollama",
			settings: config.LLMSettings{Provider: config.ProviderOllama, Model: "mistral"},
			wantName: config.ProviderOllama,
		},
		{
			name:     "groq without key",
			settings: config.LLMSettings{Provider: config.ProviderGroq, Model: "m"},
			wantErr:  true,
		},
		{
			name:     "unknown",
			settings: config.LLMSettings{Provider: "skynet", Model: "m"},
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := New(context.Background(), tt.settings)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if provider.Name() != tt.wantName || provider.Model() != tt.settings.Model {
				t.Errorf("got %s/%s; want %s/%s", provider.Name(), provider.Model(), tt.wantName, tt.settings.Model)
			}
		})
	}
}
