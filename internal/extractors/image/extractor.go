// Package image extracts text from raster images through OCR.
package image

import (
	"context"
	"strings"

	"github.com/custodia-labs/docdigest/internal/core/domain"
	"github.com/custodia-labs/docdigest/internal/core/ports/driven"
	"github.com/custodia-labs/docdigest/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Default engine configuration.
const (
	DefaultLanguage   = "eng"
	DefaultEngineMode = 1
)

// Extractor handles PNG and JPEG images.
type Extractor struct {
	factory    driven.OCREngineFactory
	language   string
	engineMode int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLanguage sets the OCR language model.
func WithLanguage(lang string) Option {
	return func(e *Extractor) {
		if lang != "" {
			e.language = lang
		}
	}
}

// WithEngineMode sets the OCR engine mode.
func WithEngineMode(mode int) Option {
	return func(e *Extractor) {
		e.engineMode = mode
	}
}

// New creates an image extractor that creates one engine per extraction.
func New(factory driven.OCREngineFactory, opts ...Option) *Extractor {
	e := &Extractor{
		factory:    factory,
		language:   DefaultLanguage,
		engineMode: DefaultEngineMode,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name identifies the extractor in logs.
func (e *Extractor) Name() string {
	return "ocr"
}

// SupportedMediaTypes returns the media types this extractor handles.
func (e *Extractor) SupportedMediaTypes() []domain.MediaType {
	return []domain.MediaType{domain.MediaTypePNG, domain.MediaTypeJPEG}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract recognises the whole image. The engine is terminated exactly once
// on every exit path.
func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	if doc == nil {
		return "", domain.ErrInvalidInput
	}

	engine, err := e.factory.NewEngine(ctx, driven.OCROptions{
		Language:   e.language,
		EngineMode: e.engineMode,
		Logger:     logProgress,
	})
	if err != nil {
		return "", &domain.ExtractionError{Reason: "initialise OCR engine", Err: err}
	}
	defer func() {
		if terr := engine.Terminate(); terr != nil {
			logger.Warn("terminate OCR engine: %v", terr)
		}
	}()

	logger.Debug("starting OCR of %q (lang=%s, mode=%d)", doc.Name, e.language, e.engineMode)
	result, err := engine.Recognize(ctx, doc.Content)
	if err != nil {
		return "", &domain.ExtractionError{Reason: "recognize image", Err: err}
	}
	if result == nil {
		return "", nil
	}
	logger.Debug("OCR completed: %d characters", len(strings.TrimSpace(result.Text)))

	return result.Text, nil
}

func logProgress(p driven.OCRProgress) {
	logger.Debug("ocr: %s (%.0f%%)", p.Status, p.Progress*100)
}
