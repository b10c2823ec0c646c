package domain

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a document media type outside the accepted set.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrNoDocumentSelected indicates generation was requested with nothing selected.
	ErrNoDocumentSelected = errors.New("no document selected: please select a document first")

	// ErrExtraction indicates the extraction engine failed.
	ErrExtraction = errors.New("text extraction failed")

	// ErrInsufficientText indicates extracted text is below MinTextLength.
	ErrInsufficientText = errors.New("could not extract enough readable text from the document")

	// ErrSummarization indicates the summarization service failed.
	ErrSummarization = errors.New("summarization failed")

	// ErrEmptySummary indicates the service answered but no bullet survived filtering.
	ErrEmptySummary = errors.New("summary contained no bullet points")

	// ErrGenerationInProgress indicates a generation attempt is already running.
	ErrGenerationInProgress = errors.New("generation already in progress")

	// ErrGenerationSuperseded indicates the attempt finished after the selection
	// changed or was reset. Its outcome was discarded.
	ErrGenerationSuperseded = errors.New("generation superseded by a newer selection")

	// ErrSummarizerNotConfigured indicates no usable summarizer settings exist.
	ErrSummarizerNotConfigured = errors.New("summarizer not configured")
)

// UnsupportedTypeError reports a media type outside the accepted set.
type UnsupportedTypeError struct {
	MediaType string
}

func (e *UnsupportedTypeError) Error() string {
	if e.MediaType == "" {
		return "unsupported file type: please select a PDF or image file (PNG, JPG, JPEG)"
	}
	return fmt.Sprintf("unsupported file type %q: please select a PDF or image file (PNG, JPG, JPEG)", e.MediaType)
}

// Unwrap allows errors.Is(err, ErrUnsupportedType).
func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedType
}

// ExtractionError reports an engine-level failure while producing text.
type ExtractionError struct {
	// Reason is a short human-readable description of what failed.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ExtractionError) Error() string {
	msg := "text extraction failed"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both ErrExtraction and the underlying cause.
func (e *ExtractionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrExtraction}
	}
	return []error{ErrExtraction, e.Err}
}

// InsufficientTextError reports extracted text shorter than the minimum.
type InsufficientTextError struct {
	Length  int
	Minimum int
}

func (e *InsufficientTextError) Error() string {
	return fmt.Sprintf("%s (%d characters, need at least %d)", ErrInsufficientText.Error(), e.Length, e.Minimum)
}

// Unwrap allows errors.Is(err, ErrInsufficientText).
func (e *InsufficientTextError) Unwrap() error {
	return ErrInsufficientText
}

// SummarizationError reports a non-success response or transport failure
// from the summarization service.
type SummarizationError struct {
	// StatusCode is the HTTP status, zero for transport failures.
	StatusCode int
	// StatusText is surfaced verbatim to the user.
	StatusText string
	// Err is the underlying cause, if any.
	Err error
	// RetryAfter is the server's requested backoff on 429, zero if absent.
	RetryAfter time.Duration
}

func (e *SummarizationError) Error() string {
	switch {
	case e.StatusText != "":
		return "summarization API error: " + e.StatusText
	case e.Err != nil:
		return "summarization API error: " + e.Err.Error()
	default:
		return "summarization API error"
	}
}

// Unwrap exposes both ErrSummarization and the underlying cause.
func (e *SummarizationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSummarization}
	}
	return []error{ErrSummarization, e.Err}
}

// ErrorCode is a stable identifier for an error category, surfaced to
// presentation alongside the human-readable message.
type ErrorCode string

// Error codes.
const (
	CodeUnsupportedType  ErrorCode = "unsupported_type"
	CodeNoDocument       ErrorCode = "no_document"
	CodeExtraction       ErrorCode = "extraction"
	CodeInsufficientText ErrorCode = "insufficient_text"
	CodeSummarization    ErrorCode = "summarization"
	CodeInProgress       ErrorCode = "in_progress"
	CodeUnknown          ErrorCode = "unknown"
)

// CodeOf maps an error to its ErrorCode.
func CodeOf(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnsupportedType):
		return CodeUnsupportedType
	case errors.Is(err, ErrNoDocumentSelected):
		return CodeNoDocument
	case errors.Is(err, ErrInsufficientText):
		return CodeInsufficientText
	case errors.Is(err, ErrExtraction):
		return CodeExtraction
	case errors.Is(err, ErrSummarization), errors.Is(err, ErrSummarizerNotConfigured):
		return CodeSummarization
	case errors.Is(err, ErrGenerationInProgress):
		return CodeInProgress
	default:
		return CodeUnknown
	}
}
