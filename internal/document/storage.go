package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
)

const (
	maxNameAttempts = 1000
	// file systems cap a name at 255 bytes; the stored name adds the upload
	// timestamp prefix and a collision suffix up to "_1000".
	maxFileNameBytes = 255
	maxNameBytes     = maxFileNameBytes - len(config.UploadTimestampLayout) - len("_") - len("_1000")
)

var storedPrefix = regexp.MustCompile(`^\d{8}_\d{6}_(.+)$`)

// sanitizeName keeps only the base name of what the client sent.
func sanitizeName(name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimSpace(filepath.Base(name))
	switch name {
	case "", ".", "..", "/":
		return "", ErrInvalidName
	}
	if strings.ContainsRune(name, 0) {
		return "", ErrInvalidName
	}
	if len(name) > maxNameBytes {
		return "", fmt.Errorf("%w: name is longer than %d bytes", ErrInvalidName, maxNameBytes)
	}
	return name, nil
}

// createExclusive opens a new file for the stored name, inserting _1, _2, ...
// before the extension until a free name is found. Existing files are never touched.
func createExclusive(dir string, storedName string) (*os.File, string, error) {
	ext := filepath.Ext(storedName)
	stem := strings.TrimSuffix(storedName, ext)

	candidate := storedName
	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		file, err := os.OpenFile(filepath.Join(dir, candidate), os.O_CREATE|os.O_EXCL|os.O_WRONLY, config.UploadFilePermission)
		if err == nil {
			return file, candidate, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", err
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, attempt, ext)
	}
	return nil, "", fmt.Errorf("no free name for %s after %d attempts", storedName, maxNameAttempts)
}

// originalFromStored strips the upload timestamp prefix, used when indexing files
// that were found on disk without a record.
func originalFromStored(storedName string) string {
	if m := storedPrefix.FindStringSubmatch(storedName); m != nil {
		return m[1]
	}
	return storedName
}

// contextReader stops a copy once the request is cancelled.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
