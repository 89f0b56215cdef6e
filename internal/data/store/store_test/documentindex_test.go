package store_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/data/redisStore"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/data/store"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/domain/documentModel"
	"github.com/fintihlupik/LLM-RAG-Agents/pkg/logger_i"
	"github.com/redis/go-redis/v9"
)

func sampleDoc(storedName string, uploadedAt time.Time) documentModel.Document {
	return documentModel.Document{
		Id:           "id-" + storedName,
		OriginalName: storedName,
		StoredName:   storedName,
		Kind:         documentModel.PDF,
		Extension:    ".pdf",
		ContentType:  "application/pdf",
		SizeBytes:    42,
		UploadedAt:   uploadedAt.UTC(),
	}
}

// exerciseIndex runs the behaviour every backend has to share.
func exerciseIndex(t *testing.T, index documentModel.Index) {
	ctx := logger_i.WithTraceID(context.Background(), "test-trace")
	now := time.Now().Truncate(time.Second)

	docs, err := index.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected empty index, got %d documents", len(docs))
	}

	if _, found, err := index.Get(ctx, "ghost.pdf"); err != nil || found {
		t.Fatalf("Get on unknown name = found %v, err %v; want not found", found, err)
	}

	first := sampleDoc("20250101_100000_a.pdf", now)
	second := sampleDoc("20250101_100001_b.pdf", now.Add(time.Second))
	for _, d := range []documentModel.Document{first, second} {
		if err := index.Put(ctx, d); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	got, found, err := index.Get(ctx, first.StoredName)
	if err != nil || !found {
		t.Fatalf("Get after Put = found %v, err %v", found, err)
	}
	if got.Id != first.Id || got.SizeBytes != first.SizeBytes || !got.UploadedAt.Equal(first.UploadedAt) {
		t.Errorf("Data mismatch! Got %+v, want %+v", got, first)
	}

	updated := first
	updated.SizeBytes = 99
	if err := index.Put(ctx, updated); err != nil {
		t.Fatalf("Put update failed: %v", err)
	}

	docs, err = index.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	got, _, _ = index.Get(ctx, first.StoredName)
	if got.SizeBytes != 99 {
		t.Errorf("expected the last record to win, got size %d", got.SizeBytes)
	}
}

func exerciseConcurrentPuts(t *testing.T, index documentModel.Index) {
	ctx := context.Background()
	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := index.Put(ctx, sampleDoc(fmt.Sprintf("doc_%02d.pdf", i), time.Now())); err != nil {
				t.Errorf("Put %d failed: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	docs, err := index.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != workers {
		t.Errorf("expected %d documents, got %d", workers, len(docs))
	}
}

func TestInMemoryDocumentIndex(t *testing.T) {
	exerciseIndex(t, store.InitInMemoryDocumentIndex())
	exerciseConcurrentPuts(t, store.InitInMemoryDocumentIndex())
}

func TestRedisDocumentIndex(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	index := store.TestDocumentIndex(redisStore.NewTestStore(client))

	exerciseIndex(t, index)

	if !mr.Exists(config.RedisIndexKey) {
		t.Errorf("expected hash %s to exist in redis", config.RedisIndexKey)
	}
}

func TestRedisDocumentIndex_Race(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	exerciseConcurrentPuts(t, store.TestDocumentIndex(redisStore.NewTestStore(client)))
}

func TestRedisDocumentIndex_SkipsUndecodableEntries(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	index := store.TestDocumentIndex(redisStore.NewTestStore(client))
	ctx := context.Background()

	if err := index.Put(ctx, sampleDoc("good.pdf", time.Now())); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	mr.HSet(config.RedisIndexKey, "broken.pdf", "{not json")

	docs, err := index.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(docs) != 1 || docs[0].StoredName != "good.pdf" {
		t.Errorf("expected only the valid entry, got %+v", docs)
	}
	if _, _, err := index.Get(ctx, "broken.pdf"); err == nil {
		t.Error("expected a decode error for the broken entry")
	}
}

func TestFileDocumentIndex(t *testing.T) {
	index, err := store.OpenFileDocumentIndex(filepath.Join(t.TempDir(), "index.jsonl"))
	if err != nil {
		t.Fatalf("OpenFileDocumentIndex failed: %v", err)
	}
	t.Cleanup(func() { _ = index.Close() })
	exerciseIndex(t, index)
}

func TestFileDocumentIndex_Race(t *testing.T) {
	index, err := store.OpenFileDocumentIndex(filepath.Join(t.TempDir(), "index.jsonl"))
	if err != nil {
		t.Fatalf("OpenFileDocumentIndex failed: %v", err)
	}
	t.Cleanup(func() { _ = index.Close() })
	exerciseConcurrentPuts(t, index)
}

func TestFileDocumentIndex_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "index.jsonl")
	ctx := context.Background()

	index, err := store.OpenFileDocumentIndex(path)
	if err != nil {
		t.Fatalf("OpenFileDocumentIndex failed: %v", err)
	}
	doc := sampleDoc("20250301_120000_report.pdf", time.Now().Truncate(time.Second))
	if err := index.Put(ctx, doc); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := index.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// a torn write from a crash must not hide the good records
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("open for corruption failed: %v", err)
	}
	_, _ = f.WriteString("{\"stored_name\": \"half\n")
	_ = f.Close()

	reopened, err := store.OpenFileDocumentIndex(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	got, found, err := reopened.Get(ctx, doc.StoredName)
	if err != nil || !found {
		t.Fatalf("document lost after reopen: found %v, err %v", found, err)
	}
	if got.Id != doc.Id {
		t.Errorf("Got id %s, want %s", got.Id, doc.Id)
	}
	docs, _ := reopened.List(ctx)
	if len(docs) != 1 {
		t.Errorf("expected 1 document after reopen, got %d", len(docs))
	}
}

func TestFileDocumentIndex_RecordAfterTornTailSurvives(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.jsonl")
	ctx := context.Background()

	index, err := store.OpenFileDocumentIndex(path)
	if err != nil {
		t.Fatalf("OpenFileDocumentIndex failed: %v", err)
	}
	first := sampleDoc("20250301_120000_first.pdf", time.Now().Truncate(time.Second))
	if err := index.Put(ctx, first); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	_ = index.Close()

	// crash mid write, no trailing newline
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("open for corruption failed: %v", err)
	}
	_, _ = f.WriteString(`{"stored_name":"half`)
	_ = f.Close()

	reopened, err := store.OpenFileDocumentIndex(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	second := sampleDoc("20250301_120500_second.pdf", time.Now().Truncate(time.Second))
	if err := reopened.Put(ctx, second); err != nil {
		t.Fatalf("Put after reopen failed: %v", err)
	}
	_ = reopened.Close()

	final, err := store.OpenFileDocumentIndex(path)
	if err != nil {
		t.Fatalf("final reopen failed: %v", err)
	}
	t.Cleanup(func() { _ = final.Close() })
	for _, name := range []string{first.StoredName, second.StoredName} {
		if _, found, _ := final.Get(ctx, name); !found {
			t.Errorf("%s lost after replay", name)
		}
	}
}

func TestNewDocumentIndex_RedisOfflineFallsBackToFile(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	index, err := store.NewDocumentIndex(ctx, config.StorageSettings{
		IndexBackend: config.IndexBackendRedis,
		IndexFile:    filepath.Join(t.TempDir(), "index.jsonl"),
		RedisAddr:    addr,
	})
	if err != nil {
		t.Fatalf("NewDocumentIndex failed: %v", err)
	}
	if _, ok := index.(*store.FileDocumentIndex); !ok {
		t.Errorf("expected file index fallback, got %T", index)
	}
}

func TestNewDocumentIndex_Backends(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	redisIndex, err := store.NewDocumentIndex(ctx, config.StorageSettings{
		IndexBackend: config.IndexBackendRedis,
		RedisAddr:    mr.Addr(),
	})
	if err != nil {
		t.Fatalf("redis backend failed: %v", err)
	}
	if _, ok := redisIndex.(*store.RedisDocumentIndex); !ok {
		t.Errorf("expected redis index, got %T", redisIndex)
	}

	memIndex, err := store.NewDocumentIndex(ctx, config.StorageSettings{IndexBackend: config.IndexBackendMemory})
	if err != nil {
		t.Fatalf("memory backend failed: %v", err)
	}
	if _, ok := memIndex.(*store.InMemoryDocumentIndex); !ok {
		t.Errorf("expected in-memory index, got %T", memIndex)
	}

	if _, err := store.NewDocumentIndex(ctx, config.StorageSettings{IndexBackend: "etcd"}); err == nil {
		t.Error("expected an error for an unknown backend")
	}
}
