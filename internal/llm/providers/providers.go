package providers

import (
	"context"
	"fmt"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/llm"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/llm/gemini"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/llm/groq"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/llm/ollama"
)

// New builds the configured provider wrapped with metrics and logging.
func New(ctx context.Context, settings config.LLMSettings) (llm.Provider, error) {
	var (
		provider llm.Provider
		err      error
	)
	switch settings.Provider {
	case config.ProviderGroq, "":
		provider, err = groq.NewClient(groq.Config{
			APIKey:      settings.APIKey,
			BaseURL:     settings.BaseURL,
			Model:       settings.Model,
			Temperature: settings.Temperature,
			MaxTokens:   settings.MaxTokens,
			Timeout:     settings.Timeout,
		})
	case config.ProviderGemini:
		provider, err = gemini.NewClient(ctx, gemini.Config{
			APIKey:      settings.APIKey,
			BaseURL:     settings.BaseURL,
			Model:       settings.Model,
			Temperature: settings.Temperature,
			MaxTokens:   settings.MaxTokens,
			Timeout:     settings.Timeout,
		})
	case config.ProviderOllama:
		provider, err = ollama.NewClient(ollama.Config{
			BaseURL:     settings.BaseURL,
			Model:       settings.Model,
			Temperature: settings.Temperature,
			MaxTokens:   settings.MaxTokens,
			Timeout:     settings.Timeout,
		})
	default:
		return nil, fmt.Errorf("unknown llm provider %q", settings.Provider)
	}
	if err != nil {
		return nil, err
	}
	return llm.Instrument(provider), nil
}
