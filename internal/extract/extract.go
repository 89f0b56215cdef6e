package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fintihlupik/LLM-RAG-Agents/pkg/logger_i"
)

var (
	ErrUnsupportedFormat = errors.New("format cannot be analysed")
	ErrNoText            = errors.New("document has no extractable text")
)

var logger = logger_i.NewLogger("Text Extraction")

type Page struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

type Result struct {
	Pages []Page
	Text  string
}

// Text extracts the readable content of a stored document, picking the reader
// from the file extension. Legacy binary Office formats are not supported.
func Text(ctx context.Context, path string) (Result, error) {
	ext := strings.ToLower(filepath.Ext(path))
	logger.WithContext(ctx).Debug("Extracting text", "path", path, "extension", ext)

	var (
		pages []Page
		err   error
	)
	switch ext {
	case ".pdf":
		pages, err = extractPDF(ctx, path)
	case ".docx":
		pages, err = extractDocx(path)
	case ".xlsx":
		pages, err = extractXlsx(ctx, path)
	case ".csv":
		pages, err = extractCSV(path)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return Result{}, err
	}
	return newResult(pages), nil
}

func newResult(pages []Page) Result {
	var kept []Page
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		if strings.TrimSpace(p.Content) == "" {
			continue
		}
		kept = append(kept, p)
		parts = append(parts, p.Content)
	}
	return Result{Pages: kept, Text: strings.Join(parts, "\n\n")}
}
