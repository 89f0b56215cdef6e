package ollama

import (
	"context"
	"fmt"
	"time"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/customHttpClient"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/llm"
	"github.com/fintihlupik/LLM-RAG-Agents/pkg/logger_i"
	"github.com/tmc/langchaingo/llms"
	lcollama "github.com/tmc/langchaingo/llms/ollama"
)

type Config struct {
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Client runs completions on a local Ollama server, no key needed.
type Client struct {
	model    llms.Model
	name     string
	defaults llm.Resolved
	timeout  time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.OllamaBaseURL
	}

	model, err := lcollama.New(
		lcollama.WithModel(cfg.Model),
		lcollama.WithServerURL(baseURL),
		lcollama.WithHTTPClient(customHttpClient.NewClient(0)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ollama: %w", err)
	}

	logger_i.NewLogger("llm_ollama").Info("Ollama client created", "model", cfg.Model, "baseURL", baseURL)
	return &Client{
		model: model,
		name:  cfg.Model,
		defaults: llm.Resolved{
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		},
		timeout: cfg.Timeout,
	}, nil
}

func (c *Client) Name() string {
	return config.ProviderOllama
}

func (c *Client) Model() string {
	return c.name
}

func (c *Client) Chat(ctx context.Context, messages []llm.Message, opts ...llm.CallOption) (string, error) {
	resolved := llm.Resolve(c.defaults, opts...)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	callOpts := []llms.CallOption{llms.WithTemperature(resolved.Temperature)}
	if resolved.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(resolved.MaxTokens))
	}

	response, err := c.model.GenerateContent(ctx, toMessageContent(messages), callOpts...)
	if err != nil {
		return "", fmt.Errorf("ollama generate content failed: %w", err)
	}
	if response == nil || len(response.Choices) == 0 {
		return "", llm.ErrEmptyResponse
	}
	return response.Choices[0].Content, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return llm.Ping(ctx, c)
}

func toMessageContent(messages []llm.Message) []llms.MessageContent {
	content := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		role := llms.ChatMessageTypeHuman
		switch m.Role {
		case llm.RoleSystem:
			role = llms.ChatMessageTypeSystem
		case llm.RoleAssistant:
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.TextParts(role, m.Content))
	}
	return content
}
