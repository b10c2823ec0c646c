// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docdigest/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdigest/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdigest/internal/core/domain"
)

// Bar displays the pipeline phase, the last message and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   domain.PipelineState
	message string
	isError bool
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	if s.message != "" {
		if s.isError {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Normal.Render(s.message)
	}
	return s.styles.Phase(s.state.Phase).Render(Describe(s.state))
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.state.Document != nil {
		bindings = s.keymap.SummaryHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// Describe summarises a pipeline state in a few words.
func Describe(state domain.PipelineState) string {
	switch state.Phase {
	case domain.PhaseExtracting:
		return "Extracting text..."
	case domain.PhaseSummarizing:
		return "Summarizing..."
	case domain.PhaseReady:
		if state.Result != nil {
			return fmt.Sprintf("%d bullets (%s)", len(state.Result.Bullets), state.Result.Length)
		}
		return "Ready"
	case domain.PhaseFailed:
		return "Failed"
	case domain.PhaseIdle:
		if state.Document == nil {
			return "Select a document"
		}
		return "Ready to generate"
	}
	return "Ready"
}

// SetState sets the pipeline state shown when there is no message.
func (s *Bar) SetState(state domain.PipelineState) {
	s.state = state
}

// State returns the current pipeline state.
func (s *Bar) State() domain.PipelineState {
	return s.state
}

// SetMessage shows an informational message.
func (s *Bar) SetMessage(message string) {
	s.message = message
	s.isError = false
}

// SetError shows an error message.
func (s *Bar) SetError(message string) {
	s.message = message
	s.isError = message != ""
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// IsError reports whether the message is an error.
func (s *Bar) IsError() bool {
	return s.isError
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear removes any message.
func (s *Bar) Clear() {
	s.message = ""
	s.isError = false
}
