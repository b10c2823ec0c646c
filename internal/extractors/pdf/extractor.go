// Package pdf extracts text from paginated documents.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/docdigest/internal/core/domain"
	"github.com/custodia-labs/docdigest/internal/core/ports/driven"
	"github.com/custodia-labs/docdigest/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents through a PageDocumentEngine.
type Extractor struct {
	engine      driven.PageDocumentEngine
	concurrency int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConcurrency sets how many pages are read at once. The engine's
// documents must then allow concurrent PageText calls. Values below one
// read pages one at a time.
func WithConcurrency(n int) Option {
	return func(e *Extractor) {
		e.concurrency = max(1, n)
	}
}

// New creates a PDF extractor backed by engine. Pages are read one at a
// time unless WithConcurrency says otherwise.
func New(engine driven.PageDocumentEngine, opts ...Option) *Extractor {
	e := &Extractor{engine: engine, concurrency: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name identifies the extractor in logs.
func (e *Extractor) Name() string {
	return "pdf"
}

// SupportedMediaTypes returns the media types this extractor handles.
func (e *Extractor) SupportedMediaTypes() []domain.MediaType {
	return []domain.MediaType{domain.MediaTypePDF}
}

// Priority returns the selection priority.
func (e *Extractor) Priority() int {
	return 50
}

// Extract joins each page's text items with a space and pages with a
// newline, strictly in ascending page order.
func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) (text string, err error) {
	if doc == nil {
		return "", domain.ErrInvalidInput
	}

	pdf, err := e.engine.Open(ctx, doc.Content)
	if err != nil {
		return "", &domain.ExtractionError{Reason: "open document", Err: err}
	}
	defer func() {
		if cerr := pdf.Close(); cerr != nil && err == nil {
			text, err = "", &domain.ExtractionError{Reason: "close document", Err: cerr}
		}
	}()

	count := pdf.PageCount()
	logger.Debug("pdf %q has %d pages", doc.Name, count)

	// Each page writes only its own slot, so output order never depends
	// on completion order.
	pages := make([]string, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i := 1; i <= count; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return &domain.ExtractionError{Reason: fmt.Sprintf("page %d", i), Err: err}
			}
			items, err := pdf.PageText(gctx, i)
			if err != nil {
				return &domain.ExtractionError{Reason: fmt.Sprintf("read page %d", i), Err: err}
			}
			pages[i-1] = strings.Join(items, " ")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	return strings.Join(pages, "\n"), nil
}
