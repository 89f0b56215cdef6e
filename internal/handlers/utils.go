package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/adapter"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/analysis"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/document"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/extract"
	"github.com/fintihlupik/LLM-RAG-Agents/pkg/logger_i"
)

var logRH = logger_i.NewLogger("RequestHandler")

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "error", err)
	}
}

// WriteErrorResponse writes the uniform error envelope, tagged with the trace id
// of the request.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, httpCode int, message string) {
	traceID := ""
	if r != nil {
		traceID = logger_i.TraceID(r.Context())
	}
	writeJsonResponse(w, httpCode, adapter.ErrorEnvelope(httpCode, message, traceID))
}

// writeError maps a service error to its status. Server side failures get a
// generic message, the detail only goes to the log.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	message := err.Error()
	switch {
	case status == http.StatusBadGateway:
		message = "The language model request failed"
	case status == http.StatusGatewayTimeout:
		message = "The request timed out"
	case status >= http.StatusInternalServerError:
		message = "Internal server error"
	}
	log := logRH.WithContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "status", status, "error", err)
	} else {
		log.Warn("Request rejected", "status", status, "error", err)
	}
	WriteErrorResponse(w, r, status, message)
}

func StatusFor(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr), errors.Is(err, document.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, document.ErrUnsupportedType),
		errors.Is(err, document.ErrMissingFile),
		errors.Is(err, document.ErrInvalidName),
		errors.Is(err, extract.ErrNoText),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, document.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, extract.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, analysis.ErrExtractionFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, analysis.ErrLLM):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("bad request")

// setBodyDeadline bounds how long reading the request body may take. The server
// only times out headers, and the write deadline is moved past the read deadline
// so a slow upload can still get its answer.
func setBodyDeadline(w http.ResponseWriter, timeout time.Duration) {
	rc := http.NewResponseController(w)
	deadline := time.Now().Add(timeout)
	if err := rc.SetReadDeadline(deadline); err != nil && !errors.Is(err, http.ErrNotSupported) {
		logRH.Warn("Couldn't set the read deadline", "error", err)
	}
	if timeout > config.WriteTimeout {
		if err := rc.SetWriteDeadline(deadline.Add(config.WriteTimeout)); err != nil && !errors.Is(err, http.ErrNotSupported) {
			logRH.Warn("Couldn't set the write deadline", "error", err)
		}
	}
}
