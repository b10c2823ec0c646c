// Package summary provides the document selection and summary view.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/docdigest/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/docdigest/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docdigest/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docdigest/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdigest/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docdigest/internal/core/domain"
	"github.com/custodia-labs/docdigest/internal/core/ports/driven"
	"github.com/custodia-labs/docdigest/internal/core/ports/driving"
)

// View lets the user pick a document, choose a length and generate bullets.
// Pipeline calls that block run inside tea.Cmds.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	pipeline  driving.PipelineService
	clipboard driven.Clipboard
	ctx       context.Context

	input   *input.PathInput
	status  *status.Bar
	spinner spinner.Model

	state  domain.PipelineState
	width  int
	height int
}

// NewView creates a new summary view. clipboard may be nil.
func NewView(
	s *styles.Styles,
	pipeline driving.PipelineService,
	clipboard driven.Clipboard,
	home string,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Warning

	v := &View{
		styles:    s,
		keymap:    km,
		pipeline:  pipeline,
		clipboard: clipboard,
		ctx:       context.Background(),
		input:     input.NewPathInput(s, home),
		status:    status.NewBar(s, km),
		spinner:   sp,
		width:     80,
		height:    24,
	}
	if pipeline != nil {
		v.setState(pipeline.State())
	}
	return v
}

// WithContext sets the context passed to pipeline calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init focuses the path input when nothing is selected.
func (v *View) Init() tea.Cmd {
	v.status.Clear()
	if v.state.Document == nil {
		return tea.Batch(v.input.Focus(), v.input.Init())
	}
	return nil
}

// Update handles messages for the summary view.
//
//nolint:gocyclo // key dispatch
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.PipelineStateChanged:
		v.setState(msg.State)
		if msg.State.Busy() {
			return v, v.spinner.Tick
		}
		return v, nil

	case messages.PipelineError:
		v.status.SetError(msg.Message)
		return v, nil

	case messages.DocumentOpened:
		v.setState(v.pipeline.State())
		if msg.Err == nil {
			v.input.Reset()
			v.input.Blur()
		}
		return v, nil

	case messages.SummaryGenerated:
		v.setState(v.pipeline.State())
		return v, nil

	case messages.SummaryCopied:
		if msg.Err != nil {
			v.status.SetError(msg.Err.Error())
		} else {
			v.status.SetMessage(fmt.Sprintf("Copied %d bullets to the clipboard", msg.Count))
		}
		return v, nil

	case spinner.TickMsg:
		if !v.state.Busy() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		if v.input.Focused() {
			return v.updateInput(msg)
		}
		return v.updateKeys(msg)
	}

	return v, nil
}

func (v *View) updateInput(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		path := v.input.Path()
		if path == "" {
			return v, nil
		}
		v.status.Clear()
		return v, v.openCmd(path)
	case tea.KeyEsc:
		v.input.Blur()
		if v.state.Document == nil {
			return v, back
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) updateKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, back

	case keymap.Matches(key, v.keymap.Open):
		v.status.Clear()
		return v, v.input.Focus()

	case keymap.Matches(key, v.keymap.Generate):
		if v.state.Busy() {
			return v, nil
		}
		v.status.Clear()
		return v, v.generateCmd()

	case keymap.Matches(key, v.keymap.Length):
		v.pipeline.SetLength(v.state.Length.Next())
		v.setState(v.pipeline.State())
		return v, nil

	case keymap.Matches(key, v.keymap.Copy):
		return v, v.copyCmd()

	case keymap.Matches(key, v.keymap.Reset):
		v.pipeline.Reset()
		v.setState(v.pipeline.State())
		v.status.Clear()
		v.input.Reset()
		return v, v.input.Focus()
	}
	return v, nil
}

func back() tea.Msg {
	return messages.ViewChanged{View: messages.ViewMenu}
}

func (v *View) openCmd(path string) tea.Cmd {
	pipeline, ctx := v.pipeline, v.ctx
	return func() tea.Msg {
		doc, err := pipeline.OpenDocument(ctx, path)
		return messages.DocumentOpened{Document: doc, Err: err}
	}
}

func (v *View) generateCmd() tea.Cmd {
	pipeline, ctx := v.pipeline, v.ctx
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		result, err := pipeline.Generate(ctx)
		return messages.SummaryGenerated{Result: result, Err: err}
	})
}

func (v *View) copyCmd() tea.Cmd {
	result := v.state.Result
	clipboard := v.clipboard
	return func() tea.Msg {
		if result.IsEmpty() {
			return messages.SummaryCopied{Err: errors.New("nothing to copy yet")}
		}
		if clipboard == nil {
			return messages.SummaryCopied{Err: errors.New("clipboard not available")}
		}
		if err := clipboard.WriteText(result.ClipboardText()); err != nil {
			return messages.SummaryCopied{Err: err}
		}
		return messages.SummaryCopied{Count: len(result.Bullets)}
	}
}

func (v *View) setState(state domain.PipelineState) {
	v.state = state
	v.status.SetState(state)
	if state.Phase == domain.PhaseFailed && state.Err != nil {
		v.status.SetError(state.Err.Error())
	}
}

// View renders the summary view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Summarize"))
	b.WriteString("\n\n")

	if v.input.Focused() || v.state.Document == nil {
		b.WriteString(v.input.View())
		b.WriteString("\n\n")
	}

	if doc := v.state.Document; doc != nil {
		b.WriteString(v.styles.Subtitle.Render(doc.Name))
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  %s, %s",
			doc.MediaType.Kind(), humanize.IBytes(uint64(doc.Size)))))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Muted.Render("Length: "))
	b.WriteString(v.styles.Normal.Render(v.state.Length.Description()))
	b.WriteString("\n\n")

	if v.state.Busy() {
		b.WriteString(v.spinner.View() + " " + status.Describe(v.state))
		b.WriteString("\n\n")
	}

	if !v.state.Result.IsEmpty() {
		b.WriteString(v.renderBullets(v.state.Result))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	v.status.SetWidth(v.width)
	b.WriteString(v.status.View())
	return b.String()
}

func (v *View) renderBullets(result *domain.SummaryResult) string {
	lines := make([]string, len(result.Bullets))
	for i, bullet := range result.Bullets {
		lines[i] = v.styles.Bullet.Render(strings.TrimSpace(domain.ClipboardBullet)) + " " + v.styles.Normal.Render(bullet)
	}
	box := v.styles.Summary
	if v.width > 4 {
		box = box.Width(v.width - 4)
	}
	return box.Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.status.SetWidth(width)
}

// State returns the last pipeline state the view rendered.
func (v *View) State() domain.PipelineState {
	return v.state
}

// InputFocused reports whether the path input has focus.
func (v *View) InputFocused() bool {
	return v.input.Focused()
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.status
}
