package handlers

import (
	"net/http"
	"time"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/api"
)

type HealthHandler struct {
	appName     string
	version     string
	llmProvider string
	llmModel    string
	startedAt   time.Time
	now         func() time.Time
}

type HealthConfig struct {
	AppName     string
	Version     string
	LLMProvider string
	LLMModel    string
	StartedAt   time.Time
}

func NewHealthHandler(cfg HealthConfig) *HealthHandler {
	if cfg.StartedAt.IsZero() {
		cfg.StartedAt = time.Now()
	}
	return &HealthHandler{
		appName:     cfg.AppName,
		version:     cfg.Version,
		llmProvider: cfg.LLMProvider,
		llmModel:    cfg.LLMModel,
		startedAt:   cfg.StartedAt,
		now:         time.Now,
	}
}

// Root godoc
// @Summary      API info
// @Description  Name, version and where to find the interactive documentation.
// @Tags         Health
// @Produce      json
// @Success      200  {object}  api.APIInfoResponse
// @Router       / [get]
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.APIInfoResponse{
		Name:    h.appName,
		Version: h.version,
		Status:  "operational",
		Docs:    "/docs",
	})
}

// Health godoc
// @Summary      Service health
// @Description  Reports the service as healthy. The language model is checked once at start-up, not per call.
// @Tags         Health
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{
		Status:        "healthy",
		Timestamp:     now.UTC(),
		LLMProvider:   h.llmProvider,
		LLMModel:      h.llmModel,
		Version:       h.version,
		UptimeSeconds: int64(now.Sub(h.startedAt).Seconds()),
	})
}
