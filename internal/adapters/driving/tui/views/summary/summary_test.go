package summary

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdigest/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docdigest/internal/core/domain"
	"github.com/custodia-labs/docdigest/internal/core/ports/driving"
)

// fakePipeline records calls and serves a fixed state.
type fakePipeline struct {
	state       domain.PipelineState
	openedPath  string
	openErr     error
	generateErr error
	result      *domain.SummaryResult
	resets      int
}

func (f *fakePipeline) SelectDocument(doc *domain.Document) error {
	f.state.Document = doc
	return nil
}

func (f *fakePipeline) OpenDocument(_ context.Context, path string) (*domain.Document, error) {
	f.openedPath = path
	if f.openErr != nil {
		return nil, f.openErr
	}
	doc := &domain.Document{Name: "report.pdf", MediaType: domain.MediaTypePDF, Size: 2048}
	f.state.Document = doc
	return doc, nil
}

func (f *fakePipeline) SetLength(length domain.LengthPreference) domain.LengthPreference {
	f.state.Length = length.Normalize()
	return f.state.Length
}

func (f *fakePipeline) Generate(_ context.Context) (*domain.SummaryResult, error) {
	if f.generateErr != nil {
		f.state.Phase = domain.PhaseFailed
		f.state.Err = f.generateErr
		return nil, f.generateErr
	}
	f.state.Phase = domain.PhaseReady
	f.state.Result = f.result
	return f.result, nil
}

func (f *fakePipeline) Reset() {
	f.resets++
	f.state = domain.PipelineState{Length: f.state.Length}
}

func (f *fakePipeline) State() domain.PipelineState { return f.state }

func (f *fakePipeline) Subscribe(driving.PipelineListener) func() { return func() {} }

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteText(text string) error {
	c.text = text
	return c.err
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func selectedView(t *testing.T) (*View, *fakePipeline, *fakeClipboard) {
	t.Helper()
	p := &fakePipeline{
		state:  domain.PipelineState{Length: domain.LengthMedium},
		result: &domain.SummaryResult{Bullets: []string{"first", "second"}, Length: domain.LengthMedium},
	}
	_, _ = p.OpenDocument(context.Background(), "report.pdf")
	clip := &fakeClipboard{}
	v := NewView(nil, p, clip, "/home/ada")
	v.SetDimensions(100, 30)
	return v, p, clip
}

func TestNewView_FocusesInputWithoutDocument(t *testing.T) {
	p := &fakePipeline{}
	v := NewView(nil, p, nil, "")

	v.Init()

	assert.True(t, v.InputFocused())
	assert.Contains(t, v.View(), "File:")
}

func TestView_OpenDocument(t *testing.T) {
	p := &fakePipeline{}
	v := NewView(nil, p, nil, "/home/ada")
	v.Init()

	for _, r := range "~/report.pdf" {
		v.Update(keyRune(r))
	}
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	opened, ok := msg.(messages.DocumentOpened)
	require.True(t, ok)
	require.NoError(t, opened.Err)
	assert.Equal(t, "/home/ada/report.pdf", p.openedPath)

	v.Update(msg)
	assert.False(t, v.InputFocused())
	assert.Contains(t, v.View(), "report.pdf")
	assert.Contains(t, v.View(), "2.0 KiB")
}

func TestView_OpenDocument_ErrorKeepsInput(t *testing.T) {
	p := &fakePipeline{openErr: &domain.UnsupportedTypeError{MediaType: "text/plain"}}
	v := NewView(nil, p, nil, "")
	v.Init()
	v.Update(keyRune('x'))

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.Update(cmd())
	v.Update(messages.PipelineError{Message: p.openErr.Error(), Code: domain.CodeUnsupportedType})

	assert.True(t, v.InputFocused())
	assert.True(t, v.Status().IsError())
	assert.Contains(t, v.Status().Message(), "please select a PDF or image file")
}

func TestView_Generate(t *testing.T) {
	v, _, _ := selectedView(t)

	_, cmd := v.Update(keyRune('g'))
	require.NotNil(t, cmd)

	// The batch contains the spinner tick and the generate call.
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	var generated messages.SummaryGenerated
	for _, c := range batch {
		if m, ok := c().(messages.SummaryGenerated); ok {
			generated = m
		}
	}
	require.NoError(t, generated.Err)

	v.Update(generated)

	assert.Equal(t, domain.PhaseReady, v.State().Phase)
	out := v.View()
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "second")
	assert.Contains(t, out, "•")
}

func TestView_GenerateFailureShowsError(t *testing.T) {
	v, p, _ := selectedView(t)
	p.generateErr = &domain.SummarizationError{StatusCode: 401, StatusText: "Unauthorized"}

	_, _ = p.Generate(context.Background())
	v.Update(messages.PipelineStateChanged{State: p.State()})

	assert.True(t, v.Status().IsError())
	assert.Equal(t, "summarization API error: Unauthorized", v.Status().Message())
}

func TestView_GenerateIgnoredWhileBusy(t *testing.T) {
	v, p, _ := selectedView(t)
	p.state.Phase = domain.PhaseSummarizing
	v.Update(messages.PipelineStateChanged{State: p.State()})

	_, cmd := v.Update(keyRune('g'))

	assert.Nil(t, cmd)
	assert.Contains(t, v.View(), "Summarizing...")
}

func TestView_CycleLength(t *testing.T) {
	v, p, _ := selectedView(t)

	v.Update(keyRune('l'))
	assert.Equal(t, domain.LengthLong, p.state.Length)

	v.Update(keyRune('l'))
	assert.Equal(t, domain.LengthShort, v.State().Length)
	assert.Contains(t, v.View(), "Short")
}

func TestView_Copy(t *testing.T) {
	v, p, clip := selectedView(t)
	_, _ = p.Generate(context.Background())
	v.Update(messages.SummaryGenerated{Result: p.result})

	_, cmd := v.Update(keyRune('c'))
	require.NotNil(t, cmd)
	msg := cmd()
	v.Update(msg)

	assert.Equal(t, "• first\n• second", clip.text)
	assert.Equal(t, messages.SummaryCopied{Count: 2}, msg)
	assert.Contains(t, v.Status().Message(), "Copied 2 bullets")
}

func TestView_CopyFailures(t *testing.T) {
	v, _, _ := selectedView(t)
	_, cmd := v.Update(keyRune('c'))
	copied := cmd().(messages.SummaryCopied)
	assert.EqualError(t, copied.Err, "nothing to copy yet")

	v, p, clip := selectedView(t)
	clip.err = errors.New("failed to copy text")
	_, _ = p.Generate(context.Background())
	v.Update(messages.SummaryGenerated{Result: p.result})

	_, cmd = v.Update(keyRune('c'))
	v.Update(cmd())

	assert.True(t, v.Status().IsError())
	assert.Equal(t, "failed to copy text", v.Status().Message())
}

func TestView_Reset(t *testing.T) {
	v, p, _ := selectedView(t)

	v.Update(keyRune('r'))

	assert.Equal(t, 1, p.resets)
	assert.Nil(t, v.State().Document)
	assert.True(t, v.InputFocused())
}

func TestView_Back(t *testing.T) {
	v, _, _ := selectedView(t)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}
