package store

import (
	"context"
	"fmt"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/domain/documentModel"
	"github.com/fintihlupik/LLM-RAG-Agents/pkg/logger_i"
)

var indexLogger = logger_i.NewLogger("DocumentIndex")

// NewDocumentIndex builds the configured backend. An unreachable Redis falls back
// to the file index.
func NewDocumentIndex(ctx context.Context, settings config.StorageSettings) (documentModel.Index, error) {
	switch settings.IndexBackend {
	case config.IndexBackendMemory:
		indexLogger.Info("Using in-memory document index")
		return InitInMemoryDocumentIndex(), nil
	case config.IndexBackendRedis:
		if redisIndex := GetRedisDocumentIndex(ctx, settings); redisIndex != nil {
			indexLogger.Info("Using redis document index", "addr", settings.RedisAddr)
			return redisIndex, nil
		}
		indexLogger.Warn("Redis unavailable, falling back to file index", "path", settings.IndexFile)
		return openFileIndex(settings)
	case config.IndexBackendFile, "":
		return openFileIndex(settings)
	default:
		return nil, fmt.Errorf("unknown index backend %q", settings.IndexBackend)
	}
}

func openFileIndex(settings config.StorageSettings) (documentModel.Index, error) {
	path := settings.IndexFile
	if path == "" {
		path = config.DefaultIndexFile
	}
	return OpenFileDocumentIndex(path)
}
