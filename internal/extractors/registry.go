package extractors

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/docdigest/internal/core/domain"
	"github.com/custodia-labs/docdigest/internal/core/ports/driven"
	"github.com/custodia-labs/docdigest/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches documents to the highest-priority extractor
// registered for their media type.
type Registry struct {
	mu         sync.RWMutex
	extractors map[domain.MediaType][]driven.Extractor
}

// NewRegistry creates a registry holding the given extractors.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{
		extractors: make(map[domain.MediaType][]driven.Extractor),
	}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// Register adds an extractor for each of its media types.
func (r *Registry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, mt := range extractor.SupportedMediaTypes() {
		list := append(r.extractors[mt], extractor)
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Priority() > list[j].Priority()
		})
		r.extractors[mt] = list
	}
}

// SupportedMediaTypes returns all media types with at least one extractor.
func (r *Registry) SupportedMediaTypes() []domain.MediaType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]domain.MediaType, 0, len(r.extractors))
	for mt := range r.extractors {
		types = append(types, mt)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Extract selects an extractor by the document's declared media type.
// Types outside the accepted set, or without a registered extractor, fail
// with *domain.UnsupportedTypeError and invoke nothing.
func (r *Registry) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	if doc == nil {
		return "", domain.ErrInvalidInput
	}
	if !doc.MediaType.IsSupported() {
		return "", &domain.UnsupportedTypeError{MediaType: doc.MediaType.String()}
	}

	r.mu.RLock()
	list := r.extractors[doc.MediaType]
	r.mu.RUnlock()

	if len(list) == 0 {
		return "", &domain.UnsupportedTypeError{MediaType: doc.MediaType.String()}
	}

	extractor := list[0]
	logger.Debug("extracting %q (%s, %d bytes) with %s", doc.Name, doc.MediaType, doc.Size, extractor.Name())
	return extractor.Extract(ctx, doc)
}
