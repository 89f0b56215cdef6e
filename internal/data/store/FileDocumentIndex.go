package store

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/domain/documentModel"
	"github.com/fintihlupik/LLM-RAG-Agents/pkg/logger_i"
)

// FileDocumentIndex keeps documents in memory and appends every Put to a JSON
// lines file, so the listing survives restarts. The last record for a stored name wins.
type FileDocumentIndex struct {
	mu     sync.RWMutex
	path   string
	file   *os.File
	docs   map[string]documentModel.Document
	logger *logger_i.Logger
}

func OpenFileDocumentIndex(path string) (*FileDocumentIndex, error) {
	if err := os.MkdirAll(filepath.Dir(path), config.UploadDirPermission); err != nil {
		return nil, fmt.Errorf("create index directory failed: %w", err)
	}

	index := &FileDocumentIndex{
		path:   path,
		docs:   make(map[string]documentModel.Document),
		logger: logger_i.NewLogger("File DocumentIndex"),
	}
	tornTail, err := index.replay()
	if err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, config.UploadFilePermission)
	if err != nil {
		return nil, fmt.Errorf("open index file failed: %w", err)
	}
	if tornTail {
		//a crash left a partial line, end it so the next record starts clean
		if _, err := file.Write([]byte{'\n'}); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("terminate torn index line failed: %w", err)
		}
		index.logger.Warn("Terminated a partial last line", "path", path)
	}
	index.file = file
	index.logger.Info("Document index opened", "path", path, "documents", len(index.docs))
	return index, nil
}

// replay loads every record and reports whether the file ends without a newline.
func (index *FileDocumentIndex) replay() (bool, error) {
	file, err := os.Open(index.path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read index file failed: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var doc documentModel.Document
		if err := json.Unmarshal(raw, &doc); err != nil || doc.StoredName == "" {
			index.logger.Warn("Skipping corrupt index line", "path", index.path, "line", line)
			continue
		}
		index.docs[doc.StoredName] = doc
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return endsWithoutNewline(file)
}

func endsWithoutNewline(file *os.File) (bool, error) {
	stat, err := file.Stat()
	if err != nil {
		return false, fmt.Errorf("stat index file failed: %w", err)
	}
	if stat.Size() == 0 {
		return false, nil
	}
	last := make([]byte, 1)
	if _, err := file.ReadAt(last, stat.Size()-1); err != nil {
		return false, fmt.Errorf("read index tail failed: %w", err)
	}
	return last[0] != '\n', nil
}

func (index *FileDocumentIndex) Put(ctx context.Context, doc documentModel.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	index.mu.Lock()
	defer index.mu.Unlock()

	if _, err := index.file.Write(data); err != nil {
		return fmt.Errorf("append index record failed: %w", err)
	}
	if err := index.file.Sync(); err != nil {
		return fmt.Errorf("sync index file failed: %w", err)
	}
	index.docs[doc.StoredName] = doc
	index.logger.WithContext(ctx).Debug("Saved document to index", "storedName", doc.StoredName)
	return nil
}

func (index *FileDocumentIndex) Get(ctx context.Context, storedName string) (documentModel.Document, bool, error) {
	index.mu.RLock()
	defer index.mu.RUnlock()
	doc, found := index.docs[storedName]
	return doc, found, nil
}

func (index *FileDocumentIndex) List(ctx context.Context) ([]documentModel.Document, error) {
	index.mu.RLock()
	defer index.mu.RUnlock()
	docs := make([]documentModel.Document, 0, len(index.docs))
	for _, doc := range index.docs {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (index *FileDocumentIndex) Close() error {
	index.mu.Lock()
	defer index.mu.Unlock()
	if index.file == nil {
		return nil
	}
	err := index.file.Close()
	index.file = nil
	return err
}
