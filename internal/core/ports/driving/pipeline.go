package driving

import (
	"context"

	"github.com/custodia-labs/docdigest/internal/core/domain"
)

// PipelineService is the presentation boundary of the summarization pipeline.
// It owns the current selection, length preference and lifecycle state.
type PipelineService interface {
	// SelectDocument replaces the current selection. A nil document clears it.
	// Unsupported media types are rejected with *domain.UnsupportedTypeError.
	SelectDocument(doc *domain.Document) error

	// OpenDocument loads a document from path and selects it.
	OpenDocument(ctx context.Context, path string) (*domain.Document, error)

	// SetLength updates the length preference and returns the normalised value.
	SetLength(length domain.LengthPreference) domain.LengthPreference

	// Generate runs extraction, validation and summarization for the current
	// selection. It blocks until the attempt completes or fails.
	Generate(ctx context.Context) (*domain.SummaryResult, error)

	// Reset discards the selection and any result.
	Reset()

	// State returns a snapshot of the current state.
	State() domain.PipelineState

	// Subscribe registers a listener and returns a function that removes it.
	Subscribe(listener PipelineListener) (unsubscribe func())
}

// PipelineListener receives pipeline events.
// Callbacks run synchronously on the goroutine that caused the change and
// must not call back into the PipelineService.
type PipelineListener interface {
	// StateChanged is called after every state transition.
	StateChanged(state domain.PipelineState)

	// ErrorOccurred is called with a user-facing message when an operation fails.
	ErrorOccurred(message string, code domain.ErrorCode)
}

// ListenerFuncs adapts plain functions to PipelineListener. Nil fields are skipped.
type ListenerFuncs struct {
	OnStateChanged  func(state domain.PipelineState)
	OnErrorOccurred func(message string, code domain.ErrorCode)
}

// StateChanged implements PipelineListener.
func (l ListenerFuncs) StateChanged(state domain.PipelineState) {
	if l.OnStateChanged != nil {
		l.OnStateChanged(state)
	}
}

// ErrorOccurred implements PipelineListener.
func (l ListenerFuncs) ErrorOccurred(message string, code domain.ErrorCode) {
	if l.OnErrorOccurred != nil {
		l.OnErrorOccurred(message, code)
	}
}
