package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/custodia-labs/docdigest/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/docdigest/internal/adapters/driven/filesystem"
	"github.com/custodia-labs/docdigest/internal/core/domain"
	"github.com/custodia-labs/docdigest/internal/core/services"
)

// executeCommand runs rootCmd with args and returns what was written to
// stdout and stderr. Flag variables are reset afterwards.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags()
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags() {
	verbose = false
	configDir = ""
	summarizeLength = ""
	summarizeJSON = false
	summarizeCopy = false
	summarizeWatch = false
	summarizerProvider = ""
	summarizerModel = ""
	summarizerKey = ""
	summarizerNoPing = false
}

// withServices installs s for the duration of the test.
func withServices(t *testing.T, s *Services) {
	t.Helper()
	SetServices(s)
	t.Cleanup(func() { SetServices(nil) })
}

type funcExtractor func(ctx context.Context, doc *domain.Document) (string, error)

func (f funcExtractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	return f(ctx, doc)
}

type stubSummarizer struct {
	bullets []string
	err     error
	calls   int
}

func (s *stubSummarizer) Summarize(_ context.Context, _ string, length domain.LengthPreference) (*domain.SummaryResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.SummaryResult{Bullets: s.bullets, Length: length}, nil
}

func (s *stubSummarizer) Ping(context.Context) error { return s.err }
func (s *stubSummarizer) Close() error               { return nil }

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteText(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

const longText = "The quarterly report covers revenue growth, hiring plans and the new office opening in spring."

// newPipeline wires the real orchestrator and loader around a fixed text
// extractor and the given summarizer.
func newPipeline(summarizer *stubSummarizer) *services.PipelineOrchestrator {
	extractor := funcExtractor(func(context.Context, *domain.Document) (string, error) {
		return longText, nil
	})
	return services.NewPipelineOrchestrator(extractor, summarizer, filesystem.NewLoader(20), domain.DefaultLength)
}

// newSettings returns a settings service backed by an in-memory store.
func newSettings(t *testing.T, seed map[string]any) *services.SettingsService {
	t.Helper()
	t.Setenv(services.APIKeyEnv, "")
	return services.NewSettingsService(memory.NewConfigStore(seed), nil, &stubValidator{})
}

type stubValidator struct {
	err error
}

func (v *stubValidator) ValidateSummarizer(*domain.SummarizerSettings) error { return v.err }

var errBoom = errors.New("boom")

func newSettingsWithValidator(t *testing.T, v *stubValidator) *services.SettingsService {
	t.Helper()
	t.Setenv(services.APIKeyEnv, "")
	return services.NewSettingsService(memory.NewConfigStore(nil), nil, v)
}
