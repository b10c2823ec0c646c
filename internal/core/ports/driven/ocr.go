package driven

import "context"

// OCRProgress is a status update emitted while an engine works.
type OCRProgress struct {
	// Status describes the current stage, e.g. "recognizing text".
	Status string
	// Progress is a fraction in [0, 1].
	Progress float64
}

// OCRLogger receives progress updates from an engine.
type OCRLogger func(OCRProgress)

// OCROptions configures a new OCR engine.
type OCROptions struct {
	// Language is the recognition language model, e.g. "eng".
	Language string
	// EngineMode selects the recognition engine variant.
	EngineMode int
	// Logger receives progress updates. May be nil.
	Logger OCRLogger
}

// OCRResult is the outcome of a recognition.
type OCRResult struct {
	Text string
}

// OCREngineFactory creates OCR engines. Each engine is scoped to a single
// extraction and must be terminated by the caller.
type OCREngineFactory interface {
	NewEngine(ctx context.Context, opts OCROptions) (OCREngine, error)
}

// OCREngine recognises text in images.
type OCREngine interface {
	// Recognize blocks until recognition of the whole image completes.
	Recognize(ctx context.Context, image []byte) (*OCRResult, error)

	// Terminate releases engine resources. Call exactly once.
	Terminate() error
}
