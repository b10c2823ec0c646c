// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/docdigest/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSummary is the document selection and summary view.
	ViewSummary
	// ViewSettings shows the current configuration.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSummary:
		return "summary"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// PipelineStateChanged carries a pipeline state snapshot from the listener.
type PipelineStateChanged struct {
	State domain.PipelineState
}

// PipelineError carries a user-facing pipeline error from the listener.
type PipelineError struct {
	Message string
	Code    domain.ErrorCode
}

// DocumentOpened signals that loading a path finished.
type DocumentOpened struct {
	Document *domain.Document
	Err      error
}

// SummaryGenerated signals that a Generate call returned.
type SummaryGenerated struct {
	Result *domain.SummaryResult
	Err    error
}

// SummaryCopied signals that the bullets were written to the clipboard.
type SummaryCopied struct {
	Count int
	Err   error
}

// ErrorOccurred signals that an error happened outside the pipeline.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings  *domain.AppSettings
	KeySource string
	Err       error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
