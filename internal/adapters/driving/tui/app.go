package tui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docdigest/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdigest/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdigest/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/docdigest/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/docdigest/internal/adapters/driving/tui/views/summary"
	"github.com/custodia-labs/docdigest/internal/core/domain"
	"github.com/custodia-labs/docdigest/internal/core/ports/driving"
)

// eventBuffer bounds pipeline events waiting for the program loop.
const eventBuffer = 64

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView     *menu.View
	summaryView  *summary.View
	settingsView *settings.View

	// events carries pipeline listener callbacks into the program loop.
	// Listeners never block; Update re-reads State after every command.
	events      chan tea.Msg
	unsubscribe func()

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	home, _ := os.UserHomeDir() //nolint:errcheck // "~" expansion is best effort

	s := styles.DefaultStyles()
	a := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		summaryView:  summary.NewView(s, ports.Pipeline, ports.Clipboard, home),
		settingsView: settings.NewView(s, ports.Settings),
		events:       make(chan tea.Msg, eventBuffer),
		currentView:  messages.ViewMenu,
	}

	a.unsubscribe = ports.Pipeline.Subscribe(driving.ListenerFuncs{
		OnStateChanged: func(state domain.PipelineState) {
			a.publish(messages.PipelineStateChanged{State: state})
		},
		OnErrorOccurred: func(message string, code domain.ErrorCode) {
			a.publish(messages.PipelineError{Message: message, Code: code})
		},
	})

	return a, nil
}

// publish hands a listener event to the program without blocking the
// pipeline goroutine. Events are dropped when the buffer is full.
func (a *App) publish(msg tea.Msg) {
	select {
	case a.events <- msg:
	default:
	}
}

// waitForEvent delivers the next pipeline event as a tea.Msg.
func (a *App) waitForEvent() tea.Msg {
	return <-a.events
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.summaryView.WithContext(ctx)
	return a
}

// Close detaches the app from the pipeline.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("docdigest"),
		a.waitForEvent,
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewSummary:
			a.summaryView, cmd = a.summaryView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.PipelineStateChanged, messages.PipelineError:
		// Always routed to the summary view, then re-armed.
		a.summaryView, cmd = a.summaryView.Update(msg)
		return a, tea.Batch(cmd, a.waitForEvent)

	case messages.DocumentOpened, messages.SummaryGenerated, messages.SummaryCopied:
		a.summaryView, cmd = a.summaryView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewSummary:
			return a, a.summaryView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (spinner ticks, blinks) to the active view.
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSummary:
		a.summaryView, cmd = a.summaryView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
	}

	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSummary:
		return a.summaryView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Summarize:
  o or /      Enter a file path (PDF, PNG, JPG, JPEG)
  g or enter  Generate bullet points
  l           Cycle length: short, medium, long
  c           Copy bullets to the clipboard
  r           Clear document and summary

Settings:
  p           Choose summarization provider
  l           Cycle default length
  v           Check the summarizer is reachable

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.Close()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.summaryView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
