package llm

import (
	"context"
	"time"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/metrics"
	"github.com/fintihlupik/LLM-RAG-Agents/pkg/logger_i"
)

type instrumented struct {
	Provider
	logger *logger_i.Logger
}

// Instrument records latency and outcome of every completion made through p.
func Instrument(p Provider) Provider {
	return &instrumented{
		Provider: p,
		logger:   logger_i.NewLogger("LLM").With("provider", p.Name(), "model", p.Model()),
	}
}

func (i *instrumented) Chat(ctx context.Context, messages []Message, opts ...CallOption) (string, error) {
	log := i.logger.WithContext(ctx)
	start := time.Now()
	answer, err := i.Provider.Chat(ctx, messages, opts...)
	elapsed := time.Since(start)

	if err != nil {
		metrics.CaptureExecutionMetrics("llm_"+i.Provider.Name(), "error", elapsed)
		log.Error("Completion failed", "duration", elapsed, "error", err)
		return "", err
	}
	metrics.CaptureExecutionMetrics("llm_"+i.Provider.Name(), "ok", elapsed)
	log.Debug("Completion done", "duration", elapsed, "messages", len(messages), "answerLength", len(answer))
	return answer, nil
}

// Ping goes through the instrumented Chat so start-up checks show up in metrics.
func (i *instrumented) Ping(ctx context.Context) error {
	return Ping(ctx, i)
}
