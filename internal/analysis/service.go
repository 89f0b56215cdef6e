package analysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fintihlupik/LLM-RAG-Agents/internal/config"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/domain/documentModel"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/extract"
	"github.com/fintihlupik/LLM-RAG-Agents/internal/llm"
	"github.com/fintihlupik/LLM-RAG-Agents/pkg/logger_i"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	ErrLLM              = errors.New("language model request failed")
	ErrExtractionFailed = errors.New("could not read document content")
)

const truncationMarker = "\n\n[content truncated]"

// DocumentSource resolves a stored file name to its record.
type DocumentSource interface {
	Get(ctx context.Context, storedName string) (documentModel.Document, error)
}

type Extractor func(ctx context.Context, path string) (extract.Result, error)

type Summary struct {
	Filename       string
	OriginalLength int
	Truncated      bool
	Summary        string
	SummaryHTML    string
	SummaryLength  int
	ModelUsed      string
	Company        string
	Year           int
}

type Comparison struct {
	FirstFilename  string
	SecondFilename string
	Comparison     string
	ComparisonHTML string
	ModelUsed      string
}

type Service struct {
	documents DocumentSource
	provider  llm.Provider
	extractor Extractor
	markdown  goldmark.Markdown
	maxChars  int
	logger    *logger_i.Logger
}

type ServiceConfig struct {
	Documents DocumentSource
	Provider  llm.Provider
	// Extractor defaults to extract.Text.
	Extractor Extractor
	// MaxPromptChars bounds the document text sent in one request.
	MaxPromptChars int
}

func InitAnalysisService(cfg ServiceConfig) *Service {
	if cfg.Extractor == nil {
		cfg.Extractor = extract.Text
	}
	if cfg.MaxPromptChars <= 0 {
		cfg.MaxPromptChars = config.MaxPromptChars
	}
	return &Service{
		documents: cfg.Documents,
		provider:  cfg.Provider,
		extractor: cfg.Extractor,
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		maxChars:  cfg.MaxPromptChars,
		logger:    logger_i.NewLogger("AnalysisService"),
	}
}

func (s *Service) Summarize(ctx context.Context, storedName string) (Summary, error) {
	log := s.logger.WithContext(ctx).With("filename", storedName)
	log.Info("Starting summary")

	doc, text, err := s.load(ctx, storedName)
	if err != nil {
		return Summary{}, err
	}
	originalLength := utf8.RuneCountInString(text)
	prompted, truncated := truncate(text, s.maxChars)
	if truncated {
		log.Warn("Document text truncated", "originalLength", originalLength, "limit", s.maxChars)
	}

	summary, err := s.provider.Chat(ctx, summarizePrompt(prompted),
		llm.WithTemperature(config.SummaryTemperature),
		llm.WithMaxTokens(config.SummaryMaxTokens))
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrLLM, err)
	}

	meta := extract.MetadataFromFilename(doc.OriginalName)
	log.Info("Summary generated", "summaryLength", len(summary))
	return Summary{
		Filename:       storedName,
		OriginalLength: originalLength,
		Truncated:      truncated,
		Summary:        summary,
		SummaryHTML:    s.renderHTML(ctx, summary),
		SummaryLength:  utf8.RuneCountInString(summary),
		ModelUsed:      s.provider.Model(),
		Company:        meta.Company,
		Year:           meta.Year,
	}, nil
}

func (s *Service) Compare(ctx context.Context, first string, second string) (Comparison, error) {
	log := s.logger.WithContext(ctx).With("first", first, "second", second)
	log.Info("Starting comparison")

	_, firstText, err := s.load(ctx, first)
	if err != nil {
		return Comparison{}, err
	}
	_, secondText, err := s.load(ctx, second)
	if err != nil {
		return Comparison{}, err
	}

	// both documents share one prompt
	budget := s.maxChars / 2
	firstText, _ = truncate(firstText, budget)
	secondText, _ = truncate(secondText, budget)

	answer, err := s.provider.Chat(ctx, comparisonPrompt(firstText, secondText),
		llm.WithTemperature(config.SummaryTemperature),
		llm.WithMaxTokens(config.SummaryMaxTokens))
	if err != nil {
		return Comparison{}, fmt.Errorf("%w: %w", ErrLLM, err)
	}

	log.Info("Comparison generated", "length", len(answer))
	return Comparison{
		FirstFilename:  first,
		SecondFilename: second,
		Comparison:     answer,
		ComparisonHTML: s.renderHTML(ctx, answer),
		ModelUsed:      s.provider.Model(),
	}, nil
}

func (s *Service) load(ctx context.Context, storedName string) (documentModel.Document, string, error) {
	doc, err := s.documents.Get(ctx, storedName)
	if err != nil {
		return documentModel.Document{}, "", err
	}

	result, err := s.extractor(ctx, doc.Path)
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return doc, "", err
	case err != nil:
		s.logger.WithContext(ctx).Error("Extraction failed", "filename", storedName, "error", err)
		return doc, "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	if strings.TrimSpace(result.Text) == "" {
		return doc, "", fmt.Errorf("%w: %s", extract.ErrNoText, storedName)
	}
	return doc, result.Text, nil
}

func (s *Service) renderHTML(ctx context.Context, markdown string) string {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(markdown), &buf); err != nil {
		s.logger.WithContext(ctx).Warn("Markdown rendering failed", "error", err)
		return ""
	}
	return buf.String()
}

// truncate cuts text to at most limit runes, marking the cut.
func truncate(text string, limit int) (string, bool) {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text, false
	}
	runes := []rune(text)
	return string(runes[:limit]) + truncationMarker, true
}
