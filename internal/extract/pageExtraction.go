package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dslipak/pdf"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
	"github.com/lu4p/cat"
)

func extractPDF(ctx context.Context, path string) ([]Page, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat pdf: %w", err)
	}

	f, err := pdf.NewReader(file, stat.Size())
	if err != nil {
		logger.Error("failed opening of pdf file", "path", path, "error", err)
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []Page
	numPages := f.NumPage()
	logger.Debug("extractPDF", "number of pages", numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := protectExtract(ctx, page)
		if err != nil {
			// skip the page, keep the rest of the document
			logger.Warn("Error parsing page content", "page", i, "error", err)
			continue
		}

		pages = append(pages, Page{
			Number:  i,
			Content: CleanText(content),
		})
	}
	return pages, nil
}

func extractDocx(path string) ([]Page, error) {
	text, err := cat.File(path)
	if err != nil {
		logger.Error("Error extracting content from doc", "path", path)
		return nil, fmt.Errorf("failed to extract docx: %w", err)
	}

	//word files carry no page breaks we can read, so the whole body is one page
	return []Page{
		{
			Number:  1,
			Content: CleanText(text),
		},
	}, nil
}

// protectExtract guards against pages whose content streams make the parser spin.
func protectExtract(ctx context.Context, page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{"", fmt.Errorf("pdf parser panic: %v", r)}
			}
		}()
		text, err := page.GetPlainText(nil)
		resChan <- result{text, err}
	}()

	timer := time.NewTimer(config.PDFPageTimeout)
	defer timer.Stop()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
		return "", errors.New("page extraction timeout")
	}
}
