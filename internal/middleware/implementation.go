package middleware

import (
	"crypto/subtle"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/adapter/utils"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/handlers"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/metrics"
	"github.com/fintihlupik/LLM-RAG-Agents/pkg/logger_i"
)

const maxTraceIDLength = 128

func injectTrace(re requestResponseStruct) requestResponseStruct {
	req := re.req
	trace := strings.TrimSpace(req.Header.Get(config.TRACE_HEADER))
	if trace == "" || len(trace) > maxTraceIDLength {
		trace = utils.GetNewUUID()
	}
	ctx := logger_i.WithTraceID(req.Context(), trace)
	re.writer.Header().Set(config.TRACE_HEADER, trace)
	re.req = req.WithContext(ctx)
	re.logger = re.logger.WithContext(ctx)
	return re
}

func (m *Middleware) authenticate(re requestResponseStruct) requestResponseStruct {
	if m.authToken == "" {
		return re
	}
	if !IsValidBearerToken(re.req.Header.Get("Authorization"), m.authToken, re.logger) {
		re.writer.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusUnauthorized,
			errorMessage: "Unauthorized",
		}
		return re
	}
	re.logger.Debug("Authorized")
	return re
}

func IsValidBearerToken(authHeader string, token string, log *logger_i.Logger) bool {
	if authHeader == "" {
		log.Warn("Empty authorization header")
		return false
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Warn("No Bearer header")
		return false
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimPrefix(authHeader, "Bearer ")), []byte(token)) != 1 {
		log.Warn("Invalid authorization header")
		return false
	}
	return true
}

func (m *Middleware) rateLimiter(re requestResponseStruct) requestResponseStruct {
	if m.limiter == nil {
		return re
	}
	ip, _, err := net.SplitHostPort(re.req.RemoteAddr)
	if err != nil {
		ip = re.req.RemoteAddr
	}

	if !m.limiter.GetLimiter(ip).Allow() {
		re.writer.Header().Set("Retry-After", "1")
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusTooManyRequests,
			errorMessage: "Rate limit exceeded",
		}
		return re
	}
	return re
}

func recoverPanic(re requestResponseStruct, rec *metrics.HttpStatusRecorder, p any) {
	if p == http.ErrAbortHandler {
		panic(p)
	}
	re.logger.Error("Handler panicked", "panic", fmt.Sprint(p), "stack", string(debug.Stack()))
	if rec.WroteHeader() {
		return
	}
	handlers.WriteErrorResponse(rec, re.req, http.StatusInternalServerError, "Internal server error")
}
