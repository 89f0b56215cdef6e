package document

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/adapter/utils"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/domain/documentModel"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/metrics"
	"github.com/fintihlupik/LLM-RAG-Agents/pkg/logger_i"
)

type UploadRequest struct {
	Filename string
	// Size is the size declared by the client, 0 when unknown.
	Size int64
	Body io.Reader
}

type Service struct {
	uploadDir string
	maxBytes  int64
	index     documentModel.Index
	now       func() time.Time
	logger    *logger_i.Logger
}

type ServiceConfig struct {
	UploadDir      string
	MaxUploadBytes int64
	Index          documentModel.Index
	Clock          func() time.Time
}

// InitDocumentService creates the upload directory if needed.
func InitDocumentService(cfg ServiceConfig) (*Service, error) {
	if cfg.Index == nil {
		return nil, errors.New("document index is required")
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = config.DefaultUploadDir
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = int64(config.DefaultMaxUploadMB) << 20
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if err := os.MkdirAll(cfg.UploadDir, config.UploadDirPermission); err != nil {
		return nil, fmt.Errorf("%w: create upload directory: %v", ErrStorage, err)
	}

	return &Service{
		uploadDir: cfg.UploadDir,
		maxBytes:  cfg.MaxUploadBytes,
		index:     cfg.Index,
		now:       cfg.Clock,
		logger:    logger_i.NewLogger("DocumentService"),
	}, nil
}

func (s *Service) MaxUploadBytes() int64 {
	return s.maxBytes
}

func (s *Service) Upload(ctx context.Context, req UploadRequest) (documentModel.Document, error) {
	log := s.logger.WithContext(ctx)

	if req.Body == nil {
		return documentModel.Document{}, ErrMissingFile
	}
	name, err := sanitizeName(req.Filename)
	if err != nil {
		return documentModel.Document{}, fmt.Errorf("%w: %q", err, req.Filename)
	}

	kind, ext, ok := documentModel.KindOf(name)
	if !ok {
		log.Warn("Rejected upload", "filename", name, "extension", ext)
		return documentModel.Document{}, fmt.Errorf("%w %q, allowed: %s",
			ErrUnsupportedType, ext, strings.Join(documentModel.AllowedExtensions(), ", "))
	}
	if req.Size > s.maxBytes {
		return documentModel.Document{}, fmt.Errorf("%w: %d bytes, limit is %d", ErrFileTooLarge, req.Size, s.maxBytes)
	}

	uploadedAt := s.now()
	file, storedName, err := createExclusive(s.uploadDir, uploadedAt.Format(config.UploadTimestampLayout)+"_"+name)
	if err != nil {
		log.Error("Couldn't create upload file", "filename", name, "error", err)
		return documentModel.Document{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	path := filepath.Join(s.uploadDir, storedName)
	log = log.With("storedName", storedName)

	hasher := sha256.New()
	// one extra byte tells an exact fit from an overflow
	limited := io.LimitReader(contextReader{ctx: ctx, r: req.Body}, s.maxBytes+1)
	written, copyErr := io.Copy(io.MultiWriter(file, hasher), limited)
	if copyErr == nil {
		copyErr = file.Sync()
	}
	closeErr := file.Close()

	switch {
	case copyErr != nil:
		s.discard(log, path)
		log.Error("Write error", "error", copyErr)
		return documentModel.Document{}, fmt.Errorf("%w: %w", ErrStorage, copyErr)
	case written > s.maxBytes:
		s.discard(log, path)
		return documentModel.Document{}, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, s.maxBytes)
	case closeErr != nil:
		s.discard(log, path)
		log.Error("Close error", "error", closeErr)
		return documentModel.Document{}, fmt.Errorf("%w: %v", ErrStorage, closeErr)
	}

	doc := documentModel.Document{
		Id:           utils.GetNewUUID(),
		OriginalName: name,
		StoredName:   storedName,
		Kind:         kind,
		Extension:    ext,
		ContentType:  documentModel.ContentTypeOf(ext),
		SizeBytes:    written,
		Path:         path,
		UploadedAt:   uploadedAt,
		SHA256:       hex.EncodeToString(hasher.Sum(nil)),
	}
	if err := s.index.Put(ctx, doc); err != nil {
		s.discard(log, path)
		log.Error("Couldn't index document", "error", err)
		return documentModel.Document{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	metrics.RecordUpload(string(kind), written)
	log.Info("Document stored", "type", kind, "size", written)
	return doc, nil
}

func (s *Service) discard(log *logger_i.Logger, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Error("Couldn't remove partial file", "path", path, "error", err)
	}
}

// List returns indexed documents whose files are still present, newest first.
func (s *Service) List(ctx context.Context) (documentModel.Listing, error) {
	docs, err := s.index.List(ctx)
	if err != nil {
		return documentModel.Listing{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	present := make([]documentModel.Document, 0, len(docs))
	for _, doc := range docs {
		if _, err := os.Stat(doc.Path); err != nil {
			s.logger.WithContext(ctx).Debug("Skipping indexed document without file", "storedName", doc.StoredName)
			continue
		}
		present = append(present, doc)
	}
	return documentModel.NewListing(present), nil
}

func (s *Service) Get(ctx context.Context, storedName string) (documentModel.Document, error) {
	name, err := sanitizeName(storedName)
	if err != nil || name != storedName {
		return documentModel.Document{}, fmt.Errorf("%w: %q", ErrNotFound, storedName)
	}

	doc, found, err := s.index.Get(ctx, name)
	if err != nil {
		return documentModel.Document{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !found {
		return documentModel.Document{}, fmt.Errorf("%w: %q", ErrNotFound, storedName)
	}
	if _, err := os.Stat(doc.Path); err != nil {
		return documentModel.Document{}, fmt.Errorf("%w: %q has no file", ErrNotFound, storedName)
	}
	return doc, nil
}

// Reconcile indexes files of an allowed type that sit in the upload directory
// without a record, for example uploads made before the index existed.
func (s *Service) Reconcile(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.uploadDir)
	if err != nil {
		return 0, fmt.Errorf("%w: read upload directory: %v", ErrStorage, err)
	}

	added := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return added, err
		}
		if !entry.Type().IsRegular() {
			continue
		}
		kind, ext, ok := documentModel.KindOf(entry.Name())
		if !ok {
			continue
		}
		if _, found, err := s.index.Get(ctx, entry.Name()); err != nil {
			return added, fmt.Errorf("%w: %v", ErrStorage, err)
		} else if found {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(s.uploadDir, entry.Name())
		sum, err := fileSHA256(path)
		if err != nil {
			s.logger.Warn("Couldn't hash file", "path", path, "error", err)
		}

		doc := documentModel.Document{
			Id:           utils.GetNewUUID(),
			OriginalName: originalFromStored(entry.Name()),
			StoredName:   entry.Name(),
			Kind:         kind,
			Extension:    ext,
			ContentType:  documentModel.ContentTypeOf(ext),
			SizeBytes:    info.Size(),
			Path:         path,
			UploadedAt:   info.ModTime(),
			SHA256:       sum,
		}
		if err := s.index.Put(ctx, doc); err != nil {
			return added, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		added++
	}

	if added > 0 {
		s.logger.Info("Indexed existing uploads", "count", added)
	}
	return added, nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
