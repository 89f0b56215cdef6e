package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/adapter/utils"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/handlers"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/llm"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/middleware"
	"github.com/fintihlupik/LLM-RAG-Agents/pkg/logger_i"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Documents *handlers.DocumentHandler
	Analysis  *handlers.AnalysisHandler
}

type Server struct {
	httpServer *http.Server
	logger     *logger_i.Logger
}

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	CloseServices    context.CancelFunc
}

// Routes mounts every endpoint. Health and docs stay open, documents and
// analysis go through auth and rate limiting when those are configured.
func Routes(h Handlers, mw *middleware.Middleware, allowedOrigins []string) http.Handler {
	r := utils.NewRouter(allowedOrigins)

	r.Router.Get("/", mw.Wrap(h.Health.Root))
	r.Router.Get("/health", mw.Wrap(h.Health.Health))

	r.Router.Post("/documents/upload", mw.WrapProtected(h.Documents.Upload))
	r.Router.Get("/documents", mw.WrapProtected(h.Documents.List))
	r.Router.Get("/documents/", mw.WrapProtected(h.Documents.List))

	r.Router.Post("/analyze/summarize", mw.WrapProtected(h.Analysis.Summarize))
	r.Router.Post("/analyze/compare", mw.WrapProtected(h.Analysis.Compare))

	r.Router.NotFound(mw.Wrap(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteErrorResponse(w, r, http.StatusNotFound, "Not found")
	}))
	r.Router.MethodNotAllowed(mw.Wrap(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteErrorResponse(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	}))
	return r.Router
}

func New(listenAddr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              listenAddr,
			Handler:           handler,
			ReadHeaderTimeout: config.ReadHeaderTimeout,
			WriteTimeout:      config.WriteTimeout,
			IdleTimeout:       config.IdleTimeout,
		},
		logger: logger_i.NewLogger("Server"),
	}
}

// Start blocks until the server stops. A clean shutdown returns nil.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(listener)
}

func (s *Server) Serve(listener net.Listener) error {
	s.logger.Info("Server is listening at", "address", listener.Addr().String())
	if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Server crashed", "error", err, "addr", listener.Addr().String())
		return err
	}
	return nil
}

func (s *Server) ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	s.logger.Info("Server is shutting down", "signal", fmt.Sprint(state))

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		s.httpServer.SetKeepAlivesEnabled(false)

		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("Could not shutdown gracefully", "error", err)
		}

		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Gracefully shut down")
	case <-ctx.Done():
		s.logger.Info("Force Shut down")
		os.Exit(1)
	}
}

// Preflight checks that the language model answers before the server accepts
// traffic.
func Preflight(ctx context.Context, provider llm.Provider, timeout time.Duration) error {
	log := logger_i.NewLogger("Server")
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Info("Checking language model", "provider", provider.Name(), "model", provider.Model())
	if err := provider.Ping(ctx); err != nil {
		return fmt.Errorf("language model %s/%s is not reachable: %w", provider.Name(), provider.Model(), err)
	}
	log.Info("Language model is reachable", "provider", provider.Name())
	return nil
}
