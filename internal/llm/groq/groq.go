package groq

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/customHttpClient"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/llm"
	"github.com/fintihlupik/LLM-RAG-Agents/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Client talks to any OpenAI compatible chat completion endpoint, Groq by default.
type Client struct {
	client   openai.Client
	model    string
	defaults llm.Resolved
	logger   *logger_i.Logger
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("groq: api key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("groq: model is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.GroqBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(customHttpClient.NewClient(0)),
		option.WithMaxRetries(0),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	logger := logger_i.NewLogger("llm_groq")
	logger.Info("Groq client created", "model", cfg.Model, "baseURL", baseURL)
	return &Client{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
		defaults: llm.Resolved{
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		},
		logger: logger,
	}, nil
}

func (c *Client) Name() string {
	return config.ProviderGroq
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) Chat(ctx context.Context, messages []llm.Message, opts ...llm.CallOption) (string, error) {
	resolved := llm.Resolve(c.defaults, opts...)

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    toOpenAIMessages(messages),
		Temperature: openai.Float(resolved.Temperature),
	}
	if resolved.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(resolved.MaxTokens))
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("groq chat completion failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", llm.ErrEmptyResponse
	}
	return completion.Choices[0].Message.Content, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return llm.Ping(ctx, c)
}

func toOpenAIMessages(messages []llm.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		case llm.RoleAssistant:
			out = append(out, openai.AssistantMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
