// @title           Financial Assistant API
// @version         0.1.0
// @description     Upload financial reports and get structured summaries and comparisons from a language model.

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/analysis"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/data/store"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/document"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/handlers"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/llm/providers"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/middleware"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/server"
	"github.com/fintihlupik/LLM-RAG-Agents/pkg/logger_i"
)

var listenAddr string

var logger = logger_i.NewLogger("main")

func main() {
	if err := run(time.Now()); err != nil {
		logger.Error("Shutting down", "error", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup, the index file above all,
// happens on every failure path.
func run(startedAt time.Time) error {
	settings, err := config.Load()
	if err != nil {
		//logger is not configured yet
		logger_i.Init("error", false)
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger_i.Init(settings.Log.Level, settings.Log.Format == "json" || settings.App.IsProd())

	//config
	flag.StringVar(&listenAddr, "listen-addr", settings.HTTP.ListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//document index and storage
	index, err := store.NewDocumentIndex(serviceContext, settings.Storage)
	if err != nil {
		return fmt.Errorf("open the document index: %w", err)
	}
	if closer, ok := index.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Error("Could not close the document index", "error", err)
			}
		}()
	}

	documents, err := document.InitDocumentService(document.ServiceConfig{
		UploadDir:      settings.Storage.UploadDir,
		MaxUploadBytes: settings.Storage.MaxUploadBytes(),
		Index:          index,
	})
	if err != nil {
		return fmt.Errorf("prepare the upload directory: %w", err)
	}
	if added, err := documents.Reconcile(serviceContext); err != nil {
		logger.Warn("Could not reconcile the upload directory", "error", err)
	} else if added > 0 {
		logger.Info("Indexed files found on disk", "count", added)
	}

	//language model, checked once before serving
	llmProvider, err := providers.New(serviceContext, settings.LLM)
	if err != nil {
		return fmt.Errorf("build the language model client: %w", err)
	}
	if err := server.Preflight(serviceContext, llmProvider, config.StartupCheckTimeout); err != nil {
		return fmt.Errorf("start-up check failed: %w", err)
	}

	analyzer := analysis.InitAnalysisService(analysis.ServiceConfig{
		Documents:      documents,
		Provider:       llmProvider,
		MaxPromptChars: config.MaxPromptChars,
	})

	routes := server.Routes(server.Handlers{
		Health: handlers.NewHealthHandler(handlers.HealthConfig{
			AppName:     settings.App.Name,
			Version:     settings.App.Version,
			LLMProvider: llmProvider.Name(),
			LLMModel:    llmProvider.Model(),
			StartedAt:   startedAt,
		}),
		Documents: handlers.NewDocumentHandler(documents),
		Analysis:  handlers.NewAnalysisHandler(analyzer),
	}, middleware.New(middleware.Config{
		AuthToken:     settings.HTTP.AuthToken,
		RatePerSecond: settings.HTTP.RateLimitPerSecond,
		Burst:         settings.HTTP.RateLimitBurst,
	}), settings.HTTP.CORSAllowedOrigins)

	//server handling
	srv := server.New(listenAddr, routes)
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	go srv.ShutDownHandler(server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	})

	if err := srv.Start(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	<-stopExecution
	logger.Info("Server stopped")
	return nil
}
