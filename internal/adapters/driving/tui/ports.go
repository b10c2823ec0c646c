// Package tui provides an interactive terminal user interface for docdigest.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/docdigest/internal/core/ports/driven"
	"github.com/custodia-labs/docdigest/internal/core/ports/driving"
)

// Ports aggregates the services the TUI depends on.
type Ports struct {
	// Pipeline runs extraction and summarization. Required.
	Pipeline driving.PipelineService

	// Settings manages application settings.
	Settings driving.SettingsService

	// Clipboard receives copied bullets.
	Clipboard driven.Clipboard
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Pipeline == nil {
		return ErrMissingPipelineService
	}
	return nil
}
