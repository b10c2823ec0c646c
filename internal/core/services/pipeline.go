package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/docdigest/internal/core/domain"
	"github.com/custodia-labs/docdigest/internal/core/ports/driven"
	"github.com/custodia-labs/docdigest/internal/core/ports/driving"
	"github.com/custodia-labs/docdigest/internal/logger"
)

// Ensure PipelineOrchestrator implements the interface.
var _ driving.PipelineService = (*PipelineOrchestrator)(nil)

// PipelineOrchestrator owns the selection, length preference and lifecycle
// of summary generation. Each Generate runs extraction, validation and
// summarization in sequence on the caller's goroutine.
//
// Every Generate takes a generation number. SelectDocument and Reset bump
// it, so an attempt that finishes after a reselection is discarded without
// touching state or notifying listeners.
type PipelineOrchestrator struct {
	extractor  driven.TextExtractor
	summarizer driven.Summarizer
	loader     driven.DocumentLoader
	now        func() time.Time

	mu         sync.RWMutex
	state      domain.PipelineState
	generation uint64
	listeners  map[int]driving.PipelineListener
	nextID     int
}

// NewPipelineOrchestrator creates an orchestrator in the Idle phase.
// summarizer may be nil when none is configured; Generate then fails with
// domain.ErrSummarizerNotConfigured. loader may be nil if OpenDocument is
// never used.
func NewPipelineOrchestrator(
	extractor driven.TextExtractor,
	summarizer driven.Summarizer,
	loader driven.DocumentLoader,
	length domain.LengthPreference,
) *PipelineOrchestrator {
	return &PipelineOrchestrator{
		extractor:  extractor,
		summarizer: summarizer,
		loader:     loader,
		now:        time.Now,
		state: domain.PipelineState{
			Phase:  domain.PhaseIdle,
			Length: length.Normalize(),
		},
		listeners: make(map[int]driving.PipelineListener),
	}
}

// SelectDocument replaces the current selection.
func (o *PipelineOrchestrator) SelectDocument(doc *domain.Document) error {
	o.mu.Lock()
	o.generation++
	o.state = domain.PipelineState{
		Phase:  domain.PhaseIdle,
		Length: o.state.Length,
	}

	var err error
	switch {
	case doc == nil:
		logger.Debug("Selection cleared")
	case !doc.MediaType.IsSupported():
		err = &domain.UnsupportedTypeError{MediaType: doc.MediaType.String()}
		logger.Debug("Rejected %s: %v", doc.Name, err)
	default:
		o.state.Document = doc
		logger.Debug("Selected %s (%s)", doc.Name, doc.MediaType)
	}
	snapshot := o.state
	o.mu.Unlock()

	o.notifyState(snapshot)
	if err != nil {
		o.notifyError(err)
	}
	return err
}

// OpenDocument loads path and selects the result.
func (o *PipelineOrchestrator) OpenDocument(ctx context.Context, path string) (*domain.Document, error) {
	if o.loader == nil {
		return nil, errors.New("document loader not configured")
	}

	doc, err := o.loader.Load(ctx, path)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedType) {
			// Same outcome as selecting an unsupported document.
			o.clearSelection()
		}
		o.notifyError(err)
		return nil, err
	}

	if err := o.SelectDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// SetLength updates the length preference. An in-flight attempt keeps the
// length it started with.
func (o *PipelineOrchestrator) SetLength(length domain.LengthPreference) domain.LengthPreference {
	length = length.Normalize()

	o.mu.Lock()
	o.state.Length = length
	snapshot := o.state
	o.mu.Unlock()

	o.notifyState(snapshot)
	return length
}

// Generate produces a summary for the current selection.
func (o *PipelineOrchestrator) Generate(ctx context.Context) (*domain.SummaryResult, error) {
	o.mu.Lock()
	doc := o.state.Document
	var guardErr error
	switch {
	case doc == nil:
		guardErr = domain.ErrNoDocumentSelected
	case o.state.Busy():
		guardErr = domain.ErrGenerationInProgress
	case o.summarizer == nil:
		guardErr = fmt.Errorf("%w. Run 'docdigest settings summarizer' to fix", domain.ErrSummarizerNotConfigured)
	}
	if guardErr != nil {
		o.mu.Unlock()
		o.notifyError(guardErr)
		return nil, guardErr
	}

	o.generation++
	gen := o.generation
	length := o.state.Length
	o.state.Phase = domain.PhaseExtracting
	o.state.Err = nil
	snapshot := o.state
	o.mu.Unlock()

	o.notifyState(snapshot)

	logger.Section("Summarize " + doc.Name)
	start := o.now()

	endExtract := logger.Stage("extract")
	text, err := o.extractor.Extract(ctx, doc)
	endExtract()
	if err != nil {
		return nil, o.fail(gen, err)
	}
	logger.Debug("Extracted %d bytes of text", len(text))

	text, err = domain.ValidateText(text)
	if err != nil {
		return nil, o.fail(gen, err)
	}

	if !o.transition(gen, domain.PhaseSummarizing) {
		return nil, domain.ErrGenerationSuperseded
	}

	endSummarize := logger.Stage("summarize")
	result, err := o.summarizer.Summarize(ctx, text, length)
	endSummarize()
	if err != nil {
		if !errors.Is(err, domain.ErrSummarization) && !errors.Is(err, domain.ErrSummarizerNotConfigured) {
			err = &domain.SummarizationError{Err: err}
		}
		return nil, o.fail(gen, err)
	}
	if result.IsEmpty() {
		return nil, o.fail(gen, fmt.Errorf("%w: %w", domain.ErrSummarization, domain.ErrEmptySummary))
	}

	result.Length = length
	result.DocumentID = doc.ID
	result.DocumentName = doc.Name
	result.GeneratedAt = o.now()

	if !o.complete(gen, result) {
		return nil, domain.ErrGenerationSuperseded
	}
	logger.Debug("Generated %d bullets in %s", len(result.Bullets), o.now().Sub(start))
	return result, nil
}

// Reset discards the selection and any result. The length preference is kept.
func (o *PipelineOrchestrator) Reset() {
	o.clearSelection()
}

// State returns a snapshot of the current state.
func (o *PipelineOrchestrator) State() domain.PipelineState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

// Subscribe registers a listener.
func (o *PipelineOrchestrator) Subscribe(listener driving.PipelineListener) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextID
	o.nextID++
	o.listeners[id] = listener

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.listeners, id)
	}
}

func (o *PipelineOrchestrator) clearSelection() {
	o.mu.Lock()
	o.generation++
	o.state = domain.PipelineState{
		Phase:  domain.PhaseIdle,
		Length: o.state.Length,
	}
	snapshot := o.state
	o.mu.Unlock()

	o.notifyState(snapshot)
}

// transition moves a current attempt to phase. It reports false if the
// attempt has been superseded.
func (o *PipelineOrchestrator) transition(gen uint64, phase domain.PipelinePhase) bool {
	o.mu.Lock()
	if gen != o.generation {
		o.mu.Unlock()
		logger.Debug("Discarding superseded attempt %d", gen)
		return false
	}
	o.state.Phase = phase
	snapshot := o.state
	o.mu.Unlock()

	o.notifyState(snapshot)
	return true
}

func (o *PipelineOrchestrator) complete(gen uint64, result *domain.SummaryResult) bool {
	o.mu.Lock()
	if gen != o.generation {
		o.mu.Unlock()
		logger.Debug("Discarding superseded result %d", gen)
		return false
	}
	o.state.Phase = domain.PhaseReady
	o.state.Result = result
	o.state.Err = nil
	snapshot := o.state
	o.mu.Unlock()

	o.notifyState(snapshot)
	return true
}

// fail records err for a current attempt. The previous result is kept.
func (o *PipelineOrchestrator) fail(gen uint64, err error) error {
	o.mu.Lock()
	if gen != o.generation {
		o.mu.Unlock()
		logger.Debug("Discarding superseded failure %d: %v", gen, err)
		return domain.ErrGenerationSuperseded
	}
	o.state.Phase = domain.PhaseFailed
	o.state.Err = err
	snapshot := o.state
	o.mu.Unlock()

	logger.Debug("Attempt %d failed: %v", gen, err)
	o.notifyState(snapshot)
	o.notifyError(err)
	return err
}

func (o *PipelineOrchestrator) snapshotListeners() []driving.PipelineListener {
	o.mu.RLock()
	defer o.mu.RUnlock()

	listeners := make([]driving.PipelineListener, 0, len(o.listeners))
	for id := 0; id < o.nextID; id++ {
		if l, ok := o.listeners[id]; ok {
			listeners = append(listeners, l)
		}
	}
	return listeners
}

func (o *PipelineOrchestrator) notifyState(state domain.PipelineState) {
	for _, l := range o.snapshotListeners() {
		l.StateChanged(state)
	}
}

func (o *PipelineOrchestrator) notifyError(err error) {
	msg, code := err.Error(), domain.CodeOf(err)
	for _, l := range o.snapshotListeners() {
		l.ErrorOccurred(msg, code)
	}
}
