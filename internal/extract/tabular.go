package extract

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

const cellSeparator = " | "

// extractXlsx returns one page per sheet, one line per non-empty row.
func extractXlsx(ctx context.Context, path string) ([]Page, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("Error closing workbook", "path", path, "error", err)
		}
	}()

	var pages []Page
	for i, sheet := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}

		lines := []string{"Sheet: " + sheet}
		for _, row := range rows {
			if line := joinRow(row); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) == 1 {
			continue
		}
		pages = append(pages, Page{Number: i + 1, Content: strings.Join(lines, "\n")})
	}
	return pages, nil
}

func extractCSV(path string) ([]Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var lines []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}
		if line := joinRow(record); line != "" {
			lines = append(lines, line)
		}
	}
	return []Page{{Number: 1, Content: strings.Join(lines, "\n")}}, nil
}

// joinRow drops trailing empty cells and returns "" for a blank row.
func joinRow(cells []string) string {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
		end--
	}
	if end == 0 {
		return ""
	}
	trimmed := make([]string, end)
	for i := 0; i < end; i++ {
		trimmed[i] = strings.TrimSpace(cells[i])
	}
	return strings.Join(trimmed, cellSeparator)
}
