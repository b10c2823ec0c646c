package driven

import (
	"context"

	"github.com/custodia-labs/docdigest/internal/core/domain"
)

// DocumentLoader reads a document from a path and declares its media type.
type DocumentLoader interface {
	Load(ctx context.Context, path string) (*domain.Document, error)
}

// DocumentWatcher reports changes to a single document on disk.
type DocumentWatcher interface {
	// Watch calls onChange after each write to path until ctx is done.
	// It returns ctx.Err() on cancellation.
	Watch(ctx context.Context, path string, onChange func()) error
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}
