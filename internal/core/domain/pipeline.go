package domain

// PipelinePhase is the lifecycle stage of the summarization pipeline.
type PipelinePhase int

// Pipeline phases.
const (
	// PhaseIdle means no attempt is running and none has completed since
	// the last selection or reset.
	PhaseIdle PipelinePhase = iota
	// PhaseExtracting means text is being extracted from the document.
	PhaseExtracting
	// PhaseSummarizing means the summarization service is being called.
	PhaseSummarizing
	// PhaseReady means the last attempt produced a SummaryResult.
	PhaseReady
	// PhaseFailed means the last attempt failed. It is ready for retry.
	PhaseFailed
)

// String returns the string representation.
func (p PipelinePhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseExtracting:
		return "extracting"
	case PhaseSummarizing:
		return "summarizing"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// PipelineState is a snapshot of the orchestrator's selection and lifecycle.
type PipelineState struct {
	// Phase is the current lifecycle stage.
	Phase PipelinePhase

	// Document is the current selection, nil when nothing is selected.
	Document *Document

	// Length is the current length preference.
	Length LengthPreference

	// Result is the most recent successful summary. It survives failed
	// attempts and is cleared on reselection or reset.
	Result *SummaryResult

	// Err is the failure of the last attempt when Phase is PhaseFailed.
	Err error
}

// Busy reports whether an attempt is in flight.
func (s PipelineState) Busy() bool {
	return s.Phase == PhaseExtracting || s.Phase == PhaseSummarizing
}

// CanGenerate reports whether a new attempt may start.
func (s PipelineState) CanGenerate() bool {
	return s.Document != nil && !s.Busy()
}
