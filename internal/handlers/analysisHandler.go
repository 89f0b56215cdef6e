package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/adapter"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/analysis"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/api"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
)

const maxJSONBody = 1 << 20

type Analyzer interface {
	Summarize(ctx context.Context, storedName string) (analysis.Summary, error)
	Compare(ctx context.Context, first string, second string) (analysis.Comparison, error)
}

type AnalysisHandler struct {
	service Analyzer
}

func NewAnalysisHandler(service Analyzer) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// Summarize godoc
// @Summary      Summarize a stored document
// @Description  Extracts the text of a stored document and asks the language model for a structured financial summary.
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Param        request  body      api.SummarizeRequest   true  "Stored file name"
// @Success      200      {object}  api.SummarizeResponse
// @Failure      400      {object}  api.ErrorResponse  "Missing file name or no extractable text"
// @Failure      404      {object}  api.ErrorResponse  "Unknown document"
// @Failure      415      {object}  api.ErrorResponse  "Format cannot be analysed"
// @Failure      422      {object}  api.ErrorResponse  "Document could not be read"
// @Failure      502      {object}  api.ErrorResponse  "Language model failure"
// @Security     BearerAuth
// @Router       /analyze/summarize [post]
func (h *AnalysisHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var requestData api.SummarizeRequest
	if err := decodeJSON(w, r, &requestData); err != nil {
		writeError(w, r, err)
		return
	}
	if strings.TrimSpace(requestData.Filename) == "" {
		writeError(w, r, fmt.Errorf("%w: filename is required", errBadRequest))
		return
	}

	summary, err := h.service.Summarize(r.Context(), requestData.Filename)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSummarizeResponse(summary))
}

// Compare godoc
// @Summary      Compare two stored documents
// @Description  Asks the language model for the key differences between two stored reports.
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Param        request  body      api.CompareRequest   true  "Stored file names"
// @Success      200      {object}  api.CompareResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      415      {object}  api.ErrorResponse
// @Failure      422      {object}  api.ErrorResponse
// @Failure      502      {object}  api.ErrorResponse
// @Security     BearerAuth
// @Router       /analyze/compare [post]
func (h *AnalysisHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var requestData api.CompareRequest
	if err := decodeJSON(w, r, &requestData); err != nil {
		writeError(w, r, err)
		return
	}
	if strings.TrimSpace(requestData.FirstFilename) == "" || strings.TrimSpace(requestData.SecondFilename) == "" {
		writeError(w, r, fmt.Errorf("%w: first_filename and second_filename are required", errBadRequest))
		return
	}

	comparison, err := h.service.Compare(r.Context(), requestData.FirstFilename, requestData.SecondFilename)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToCompareResponse(comparison))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, into interface{}) error {
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logRH.Error("Couldn't close the request body", "error", err)
		}
	}(r.Body)

	setBodyDeadline(w, config.RequestBodyTimeout)
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := decoder.Decode(into); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}
