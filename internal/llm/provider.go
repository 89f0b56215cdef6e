package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

var ErrEmptyResponse = errors.New("llm returned an empty response")

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Provider is a chat completion backend. Implementations are safe for
// concurrent use and are built once at start-up.
type Provider interface {
	Chat(ctx context.Context, messages []Message, opts ...CallOption) (string, error)
	Ping(ctx context.Context) error
	Name() string
	Model() string
}

type CallOptions struct {
	Temperature *float64
	MaxTokens   *int
}

type CallOption func(*CallOptions)

func WithTemperature(t float64) CallOption {
	return func(o *CallOptions) {
		o.Temperature = &t
	}
}

func WithMaxTokens(n int) CallOption {
	return func(o *CallOptions) {
		o.MaxTokens = &n
	}
}

// Resolved is what a provider sends upstream after applying call options over
// its configured defaults.
type Resolved struct {
	Temperature float64
	MaxTokens   int
}

func Resolve(defaults Resolved, opts ...CallOption) Resolved {
	var o CallOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.Temperature != nil {
		defaults.Temperature = *o.Temperature
	}
	if o.MaxTokens != nil && *o.MaxTokens > 0 {
		defaults.MaxTokens = *o.MaxTokens
	}
	return defaults
}

const (
	pingSystemPrompt = "You are an expert financial assistant."
	pingUserPrompt   = "Reply only with 'Connection successful'."
	pingMaxTokens    = 100
)

type chatter interface {
	Chat(ctx context.Context, messages []Message, opts ...CallOption) (string, error)
}

// Ping sends a tiny prompt through c. Any error or a blank answer fails.
func Ping(ctx context.Context, c chatter) error {
	answer, err := c.Chat(ctx, []Message{
		SystemMessage(pingSystemPrompt),
		UserMessage(pingUserPrompt),
	}, WithMaxTokens(pingMaxTokens))
	if err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	if strings.TrimSpace(answer) == "" {
		return fmt.Errorf("ping failed: %w", ErrEmptyResponse)
	}
	return nil
}

// SplitSystem separates system messages, which some backends take out of band.
func SplitSystem(messages []Message) (string, []Message) {
	var system []string
	rest := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		rest = append(rest, m)
	}
	return strings.Join(system, "\n\n"), rest
}
