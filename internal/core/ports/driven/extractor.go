package driven

import (
	"context"

	"github.com/custodia-labs/docdigest/internal/core/domain"
)

// TextExtractor produces plain text from a document.
// Unsupported media types fail with *domain.UnsupportedTypeError before any
// engine is invoked; engine failures surface as *domain.ExtractionError.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// Extractor is a single extraction strategy for a set of media types.
type Extractor interface {
	TextExtractor

	// Name identifies the strategy in logs.
	Name() string

	// SupportedMediaTypes returns the media types this extractor handles.
	SupportedMediaTypes() []domain.MediaType

	// Priority returns the selection priority (higher = preferred).
	// Generic strategies should return 50.
	// Fallbacks should return 1-9.
	Priority() int
}

// ExtractorRegistry selects the appropriate extractor for a document.
type ExtractorRegistry interface {
	TextExtractor

	// Register adds an extractor to the registry.
	Register(extractor Extractor)

	// SupportedMediaTypes returns all media types that can be extracted.
	SupportedMediaTypes() []domain.MediaType
}
