package documentModel

import (
	"context"
	"sort"
	"time"
)

type Document struct {
	Id           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	StoredName   string    `json:"stored_name"`
	Kind         DocType   `json:"type"`
	Extension    string    `json:"extension"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	Path         string    `json:"path"`
	UploadedAt   time.Time `json:"uploaded_at"`
	SHA256       string    `json:"sha256,omitempty"`
}

type Listing struct {
	Documents []Document
	Total     int
	ByType    map[DocType]int
}

// Index is the persisted record of stored documents, keyed by stored name.
type Index interface {
	Put(ctx context.Context, doc Document) error
	Get(ctx context.Context, storedName string) (Document, bool, error)
	List(ctx context.Context) ([]Document, error)
}

// SortNewestFirst orders by upload time, newest first, with the stored name as a
// tie breaker so the order is stable across index backends.
func SortNewestFirst(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		if !docs[i].UploadedAt.Equal(docs[j].UploadedAt) {
			return docs[i].UploadedAt.After(docs[j].UploadedAt)
		}
		return docs[i].StoredName > docs[j].StoredName
	})
}

func NewListing(docs []Document) Listing {
	SortNewestFirst(docs)
	byType := make(map[DocType]int)
	for _, d := range docs {
		byType[d.Kind]++
	}
	if docs == nil {
		docs = []Document{}
	}
	return Listing{Documents: docs, Total: len(docs), ByType: byType}
}
