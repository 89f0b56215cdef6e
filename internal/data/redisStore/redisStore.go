package redisStore

import (
	"context"
	"fmt"
	"sync"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
	"github.com/fintihlupik/LLM-RAG-Agents/pkg/logger_i"
	"github.com/redis/go-redis/v9"
)

var (
	instances = make(map[string]*Store)
	mu        sync.RWMutex
	logger    = logger_i.NewLogger("Redis Store")
)

type Options struct {
	Addr     string
	Password string
	DB       int
}

func (o Options) key() string {
	return fmt.Sprintf("%s/%d", o.Addr, o.DB)
}

type Store struct {
	client *redis.Client
	DB     int
}

// GetRedisStore returns the shared store for the address and database, or nil when
// Redis does not answer a ping. The client is closed when ctx is done.
func GetRedisStore(ctx context.Context, opts Options) *Store {
	mu.RLock()
	instance, exists := instances[opts.key()]
	mu.RUnlock()

	if exists {
		return instance
	}

	mu.Lock()
	defer mu.Unlock()

	if instance, exists = instances[opts.key()]; exists {
		return instance
	}
	return createNewStore(ctx, opts)
}

func createNewStore(ctx context.Context, opts Options) *Store {
	addr := opts.Addr
	if addr == "" {
		addr = config.RedisAddr
	}
	newClient := redis.NewClient(&redis.Options{
		Addr:                  addr,
		Password:              opts.Password,
		DB:                    opts.DB,
		ContextTimeoutEnabled: true,
		ReadTimeout:           config.RedisIOTimeout,
		WriteTimeout:          config.RedisIOTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, config.RedisPingTimeout)
	defer cancel()

	if err := newClient.Ping(pingCtx).Err(); err != nil {
		logger.Error("Redis is offline", "addr", addr, "error", err.Error())
		_ = newClient.Close()
		return nil
	}

	logger.Info("Redis store connected", "addr", addr, "db", opts.DB)

	newStore := &Store{
		client: newClient,
		DB:     opts.DB,
	}
	instances[opts.key()] = newStore
	go closeOnDone(ctx, opts.key(), newStore)
	return newStore
}

func closeOnDone(ctx context.Context, key string, store *Store) {
	<-ctx.Done()
	mu.Lock()
	delete(instances, key)
	mu.Unlock()
	if err := store.client.Close(); err != nil {
		logger.Error("Error closing redis client", "error", err)
		return
	}
	logger.Info("Redis store closed", "db", store.DB)
}

// NewTestStore wraps an existing client, used with miniredis in tests.
func NewTestStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}
