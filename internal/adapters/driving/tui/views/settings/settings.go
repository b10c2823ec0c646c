// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdigest/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdigest/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdigest/internal/core/domain"
	"github.com/custodia-labs/docdigest/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionProvider
	SectionAPIKey
)

// validated carries the result of a connectivity check.
type validated struct {
	err error
}

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings  *domain.AppSettings
	keySource string
	err       error
	notice    string

	section  Section
	selected int
	provider domain.SummarizerProvider
	apiKey   textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	apiKey := textinput.New()
	apiKey.Placeholder = "API key or ENV=NAME (blank keeps the current key)"
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 256

	return &View{
		styles:          s,
		settingsService: settingsService,
		apiKey:          apiKey,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// Reset returns to the overview.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.notice = ""
	v.err = nil
	v.apiKey.Reset()
	v.apiKey.Blur()
}

func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: errors.New("settings service not available")}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, KeySource: svc.KeySource(), Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.settings = msg.Settings
			v.keySource = msg.KeySource
		}
		return v, nil

	case messages.SettingsSaved:
		v.err = msg.Err
		if msg.Err != nil {
			return v, nil
		}
		v.notice = "Saved."
		return v, v.loadSettings()

	case validated:
		if msg.err != nil {
			v.err = msg.err
			v.notice = ""
		} else {
			v.err = nil
			v.notice = "Summarizer reachable."
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.section {
	case SectionProvider:
		return v.handleProviderKeys(msg)
	case SectionAPIKey:
		return v.handleAPIKeyKeys(msg)
	case SectionOverview:
	}

	switch msg.String() {
	case "esc":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case "p":
		v.section = SectionProvider
		v.selected = 0
		v.notice = ""
		return v, nil
	case "l":
		if v.settings == nil || v.settingsService == nil {
			return v, nil
		}
		next := v.settings.DefaultLength.Next()
		svc := v.settingsService
		return v, func() tea.Msg {
			return messages.SettingsSaved{Err: svc.SetDefaultLength(next)}
		}
	case "v":
		if v.settingsService == nil {
			return v, nil
		}
		v.notice = "Validating..."
		svc := v.settingsService
		return v, func() tea.Msg {
			return validated{err: svc.ValidateSummarizerConfig()}
		}
	}
	return v, nil
}

func (v *View) handleProviderKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	providers := domain.AllSummarizerProviders()
	switch msg.String() {
	case "esc":
		v.section = SectionOverview
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(providers)-1 {
			v.selected++
		}
	case "enter":
		v.provider = providers[v.selected]
		if v.provider.RequiresAPIKey() {
			v.section = SectionAPIKey
			v.apiKey.Reset()
			return v, v.apiKey.Focus()
		}
		v.section = SectionOverview
		return v, v.saveProvider("")
	}
	return v, nil
}

func (v *View) handleAPIKeyKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.apiKey.Blur()
		v.section = SectionProvider
		return v, nil
	case tea.KeyEnter:
		key := strings.TrimSpace(v.apiKey.Value())
		v.apiKey.Reset()
		v.apiKey.Blur()
		v.section = SectionOverview
		return v, v.saveProvider(key)
	}

	var cmd tea.Cmd
	v.apiKey, cmd = v.apiKey.Update(msg)
	return v, cmd
}

func (v *View) saveProvider(apiKey string) tea.Cmd {
	svc, provider := v.settingsService, v.provider
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: errors.New("settings service not available")}
		}
		return messages.SettingsSaved{Err: svc.SetSummarizer(provider, "", apiKey)}
	}
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	switch v.section {
	case SectionProvider:
		b.WriteString(v.renderProviders())
	case SectionAPIKey:
		b.WriteString(v.styles.Subtitle.Render(v.provider.Description()))
		b.WriteString("\n\n")
		b.WriteString(v.styles.InputField.Render(v.apiKey.View()))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[Enter] Save  [Esc] Back"))
	case SectionOverview:
		b.WriteString(v.renderOverview())
	}

	if v.err != nil {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	} else if v.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Success.Render(v.notice))
	}
	return b.String()
}

func (v *View) renderOverview() string {
	if v.settings == nil {
		return v.styles.Muted.Render("Loading settings...")
	}
	s := v.settings

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %-14s", label)))
		b.WriteString(v.styles.Normal.Render(value))
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Subtitle.Render("Summarizer"))
	b.WriteString("\n")
	row("Provider", s.Summarizer.Provider.Description())
	if s.Summarizer.Model != "" {
		row("Model", s.Summarizer.Model)
	}
	if s.Summarizer.Provider.RequiresAPIKey() {
		key := "(not set)"
		if s.Summarizer.APIKey != "" {
			key = "set via " + v.keySource
		}
		row("API key", key)
	}
	b.WriteString("\n")

	b.WriteString(v.styles.Subtitle.Render("OCR"))
	b.WriteString("\n")
	row("Language", s.OCR.Language)
	row("Command", s.OCR.Command)
	b.WriteString("\n")

	b.WriteString(v.styles.Subtitle.Render("Summary"))
	b.WriteString("\n")
	row("Default length", s.DefaultLength.Description())
	b.WriteString("\n")

	b.WriteString(v.styles.Help.Render("[p] Provider  [l] Default length  [v] Validate  [Esc] Back"))
	return b.String()
}

func (v *View) renderProviders() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Select summarization provider"))
	b.WriteString("\n\n")
	for i, p := range domain.AllSummarizerProviders() {
		cursor := "  "
		style := v.styles.Normal
		if i == v.selected {
			cursor = "> "
			style = v.styles.Selected
		}
		b.WriteString(cursor + style.Render(p.Description()) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [Esc] Back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
