package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/handlers"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/metrics"
	"github.com/fintihlupik/LLM-RAG-Agents/pkg/logger_i"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

type Config struct {
	// AuthToken enables bearer auth on protected routes when set.
	AuthToken string
	// RatePerSecond enables per IP rate limiting on protected routes when positive.
	RatePerSecond float64
	Burst         int
}

type Middleware struct {
	authToken string
	limiter   *IPRateLimiter
}

func New(cfg Config) *Middleware {
	m := &Middleware{authToken: cfg.AuthToken}
	if cfg.RatePerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		m.limiter = NewIPRateLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	return m
}

type step func(re requestResponseStruct) requestResponseStruct

// Wrap adds tracing, request logging, panic recovery and metrics.
func (m *Middleware) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return m.chain(next)
}

// WrapProtected is Wrap plus bearer auth and rate limiting.
func (m *Middleware) WrapProtected(next http.HandlerFunc) http.HandlerFunc {
	return m.chain(next, m.authenticate, m.rateLimiter)
}

func (m *Middleware) chain(next http.HandlerFunc, steps ...step) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := metrics.NewHttpStatusRecorder(w) //metrics
		re := injectTrace(requestResponseStruct{req: r, writer: rec, logger: logger_i.NewLogger("middleware")})
		re.logger.Info("→ " + r.Method + " " + r.URL.Path)

		defer func() {
			if p := recover(); p != nil {
				recoverPanic(re, rec, p)
			}
			elapsed := time.Since(start)
			re.logger.Info("← "+r.Method+" "+r.URL.Path+" - "+strconv.Itoa(rec.Status)+" ("+elapsed.Round(time.Millisecond).String()+")",
				"status", rec.Status, "duration", elapsed)
			metrics.CaptureRequestMetrics(routePattern(re.req), strconv.Itoa(rec.Status), elapsed) //metrics
		}()

		for _, s := range steps {
			re = s(re)
			if !handleBadRequest(re) {
				return
			}
		}
		next(rec, re.req)
	}
}

// routePattern keeps metric labels bounded to the registered routes.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func handleBadRequest(re requestResponseStruct) bool {
	if re.badRequest.isBadRequest {
		re.logger.Warn("Bad request", "httpCode", re.badRequest.httpCode, "errorMessage", re.badRequest.errorMessage, "IP", re.req.RemoteAddr)
		handlers.WriteErrorResponse(re.writer, re.req, re.badRequest.httpCode, re.badRequest.errorMessage)
		return false
	}
	return true
}
