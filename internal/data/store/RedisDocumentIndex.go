package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/data/redisStore"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/domain/documentModel"
	"github.com/fintihlupik/LLM-RAG-Agents/pkg/logger_i"
)

// RedisDocumentIndex stores one hash field per stored name, holding the JSON document.
type RedisDocumentIndex struct {
	store  *redisStore.Store
	key    string
	logger *logger_i.Logger
}

// GetRedisDocumentIndex returns nil when Redis is offline so the caller can fall back.
func GetRedisDocumentIndex(ctx context.Context, settings config.StorageSettings) *RedisDocumentIndex {
	s := redisStore.GetRedisStore(ctx, redisStore.Options{
		Addr:     settings.RedisAddr,
		Password: settings.RedisPassword,
		DB:       settings.RedisDB,
	})
	if s == nil {
		return nil
	}
	return newRedisDocumentIndex(s)
}

func newRedisDocumentIndex(s *redisStore.Store) *RedisDocumentIndex {
	return &RedisDocumentIndex{
		store:  s,
		key:    config.RedisIndexKey,
		logger: logger_i.NewLogger("Redis DocumentIndex"),
	}
}

func (s *RedisDocumentIndex) Put(ctx context.Context, doc documentModel.Document) error {
	log := s.logger.WithContext(ctx).With("storedName", doc.StoredName)
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := s.store.HashSet(ctx, s.key, doc.StoredName, data); err != nil {
		return fmt.Errorf("save document to redis failed: %w", err)
	}
	log.Debug("Saved document to Redis")
	return nil
}

func (s *RedisDocumentIndex) Get(ctx context.Context, storedName string) (documentModel.Document, bool, error) {
	var doc documentModel.Document
	val, err := s.store.HashGet(ctx, s.key, storedName)
	if s.store.IsNil(err) {
		return doc, false, nil
	} else if err != nil {
		return doc, false, fmt.Errorf("get document from redis failed: %w", err)
	}
	if err := json.Unmarshal([]byte(val), &doc); err != nil {
		return doc, false, fmt.Errorf("decode document %s failed: %w", storedName, err)
	}
	return doc, true, nil
}

func (s *RedisDocumentIndex) List(ctx context.Context) ([]documentModel.Document, error) {
	values, err := s.store.HashValues(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("list documents from redis failed: %w", err)
	}
	docs := make([]documentModel.Document, 0, len(values))
	for _, val := range values {
		var doc documentModel.Document
		if err := json.Unmarshal([]byte(val), &doc); err != nil {
			s.logger.WithContext(ctx).Warn("Skipping undecodable index entry", "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func TestDocumentIndex(store *redisStore.Store) *RedisDocumentIndex {
	return newRedisDocumentIndex(store)
}
