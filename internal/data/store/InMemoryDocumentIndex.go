package store

import (
	"context"
	"sync"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/domain/documentModel"
	"github.com/fintihlupik/LLM-RAG-Agents/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem DocumentIndex")

type InMemoryDocumentIndex struct {
	docMutex *sync.RWMutex
	docMap   map[string]documentModel.Document
}

func InitInMemoryDocumentIndex() *InMemoryDocumentIndex {
	return &InMemoryDocumentIndex{
		docMutex: new(sync.RWMutex),
		docMap:   make(map[string]documentModel.Document),
	}
}

func (index *InMemoryDocumentIndex) Put(ctx context.Context, doc documentModel.Document) error {
	index.docMutex.Lock()
	defer index.docMutex.Unlock()
	index.docMap[doc.StoredName] = doc
	inMemLogger.WithContext(ctx).Debug("Saved document to index", "storedName", doc.StoredName)
	return nil
}

func (index *InMemoryDocumentIndex) Get(ctx context.Context, storedName string) (documentModel.Document, bool, error) {
	index.docMutex.RLock()
	defer index.docMutex.RUnlock()
	result, found := index.docMap[storedName]
	return result, found, nil
}

func (index *InMemoryDocumentIndex) List(ctx context.Context) ([]documentModel.Document, error) {
	index.docMutex.RLock()
	defer index.docMutex.RUnlock()
	docs := make([]documentModel.Document, 0, len(index.docMap))
	for _, doc := range index.docMap {
		docs = append(docs, doc)
	}
	return docs, nil
}
