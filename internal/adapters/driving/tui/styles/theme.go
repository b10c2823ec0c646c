// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/docdigest/internal/core/domain"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary colours titles, selection and the summary frame.
	Primary lipgloss.Color

	// Secondary colours subtitles and bullet markers.
	Secondary lipgloss.Color

	// Background is the base terminal colour.
	Background lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for hints and secondary details.
	Muted lipgloss.Color

	// Success marks a finished summary.
	Success lipgloss.Color

	// Warning colours cautions such as a missing API key.
	Warning lipgloss.Color

	// Error marks failed steps.
	Error lipgloss.Color

	// Border outlines inputs and panels.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#2563EB"), // Blue
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Background: lipgloss.Color("#1E1E2E"), // Dark gray
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title renders view headers.
	Title lipgloss.Style

	// Subtitle renders section headers.
	Subtitle lipgloss.Style

	// Normal renders body text.
	Normal lipgloss.Style

	// Muted renders hints and file details.
	Muted lipgloss.Style

	// Selected renders the highlighted menu item.
	Selected lipgloss.Style

	// Error renders failure messages.
	Error lipgloss.Style

	// Success renders completion messages.
	Success lipgloss.Style

	// Warning renders configuration warnings.
	Warning lipgloss.Style

	// InputField frames the file path input.
	InputField lipgloss.Style

	// StatusBar renders the bottom status line.
	StatusBar lipgloss.Style

	// Help renders key binding hints.
	Help lipgloss.Style

	// Border frames bordered panels.
	Border lipgloss.Style

	// Bullet renders the marker in front of each summary point.
	Bullet lipgloss.Style

	// Summary frames the bullet list.
	Summary lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Bullet: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Summary: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Phase returns the style used to label a pipeline phase.
func (s *Styles) Phase(phase domain.PipelinePhase) lipgloss.Style {
	switch phase {
	case domain.PhaseExtracting, domain.PhaseSummarizing:
		return s.Warning
	case domain.PhaseReady:
		return s.Success
	case domain.PhaseFailed:
		return s.Error
	default:
		return s.Muted
	}
}
