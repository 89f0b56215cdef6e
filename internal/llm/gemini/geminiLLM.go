package gemini

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
	"google.golang.org/genai"
)

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

type llmClient struct {
	client   *genai.Client
	model    string
	defaults llm.Resolved
	timeout  time.Duration
	logger   *logger_i.Logger
}

func NewClient(ctx context.Context, cfg Config) (llm.Provider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini: api key is required")
	}
	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: customHttpClient.NewClient(0),
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	c, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client failed: %w", err)
	}

	logger := logger_i.NewLogger("llm_gemini")
	logger.Info("Gemini client created", "model", cfg.Model)
	return &llmClient{
		client: c,
		model:  cfg.Model,
		defaults: llm.Resolved{
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		},
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

func (c *llmClient) Name() string {
	return config.ProviderGemini
}

func (c *llmClient) Model() string {
	return c.model
}

func (c *llmClient) Chat(ctx context.Context, messages []llm.Message, opts ...llm.CallOption) (string, error) {
	resolved := llm.Resolve(c.defaults, opts...)
	system, rest := llm.SplitSystem(messages)

	contentConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(resolved.Temperature)),
	}
	if resolved.MaxTokens > 0 {
		contentConfig.MaxOutputTokens = int32(resolved.MaxTokens)
	}
	if system != "" {
		contentConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, toContents(rest), contentConfig)
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}
	if result == nil {
		return "", llm.ErrEmptyResponse
	}
	return result.Text(), nil
}

func (c *llmClient) Ping(ctx context.Context) error {
	return llm.Ping(ctx, c)
}

const (
	roleUser  = "user"
	roleModel = "model"
)

func toContents(messages []llm.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		role := roleUser
		if m.Role == llm.RoleAssistant {
			role = roleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	return contents
}
