package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdigest/internal/core/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSummarizeCmd_Exists(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"summarize"})
	require.NoError(t, err)
	assert.Equal(t, "summarize FILE", cmd.Use)
	for _, name := range []string{"length", "json", "copy", "watch"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestSummarizeCmd_NoService(t *testing.T) {
	withServices(t, nil)
	path := writeFile(t, "report.pdf", "%PDF-1.4")

	_, _, err := executeCommand(t, "", "summarize", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pipeline service not configured")
}

func TestSummarizeCmd_RequiresFile(t *testing.T) {
	_, _, err := executeCommand(t, "", "summarize")
	assert.Error(t, err)
}

func TestSummarizeCmd_TextOutput(t *testing.T) {
	summarizer := &stubSummarizer{bullets: []string{"Revenue grew", "Hiring continues"}}
	withServices(t, &Services{Pipeline: newPipeline(summarizer)})
	path := writeFile(t, "report.pdf", "%PDF-1.4")

	stdout, stderr, err := executeCommand(t, "", "summarize", path)

	require.NoError(t, err)
	assert.Equal(t, "• Revenue grew\n• Hiring continues\n", stdout)
	assert.Contains(t, stderr, "Summarizing report.pdf")
	assert.Contains(t, stderr, "medium")
	assert.Equal(t, 1, summarizer.calls)
}

func TestSummarizeCmd_JSONOutput(t *testing.T) {
	summarizer := &stubSummarizer{bullets: []string{"One", "Two"}}
	withServices(t, &Services{Pipeline: newPipeline(summarizer)})
	path := writeFile(t, "scan.png", "\x89PNG\r\n\x1a\n")

	stdout, _, err := executeCommand(t, "", "summarize", "--json", "--length", "short", path)
	require.NoError(t, err)

	var out summaryJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "scan.png", out.Document)
	assert.Equal(t, "short", out.Length)
	assert.Equal(t, []string{"One", "Two"}, out.Bullets)
	assert.False(t, out.GeneratedAt.IsZero())
}

func TestSummarizeCmd_InvalidLength(t *testing.T) {
	summarizer := &stubSummarizer{bullets: []string{"One"}}
	withServices(t, &Services{Pipeline: newPipeline(summarizer)})
	path := writeFile(t, "report.pdf", "%PDF-1.4")

	_, _, err := executeCommand(t, "", "summarize", "--length", "tiny", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid length "tiny"`)
	assert.Zero(t, summarizer.calls)
}

func TestSummarizeCmd_UnsupportedType(t *testing.T) {
	summarizer := &stubSummarizer{bullets: []string{"One"}}
	withServices(t, &Services{Pipeline: newPipeline(summarizer)})
	path := writeFile(t, "notes.txt", "plain text")

	_, _, err := executeCommand(t, "", "summarize", path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Zero(t, summarizer.calls)
}

func TestSummarizeCmd_SummarizerFailure(t *testing.T) {
	summarizer := &stubSummarizer{err: &domain.SummarizationError{StatusCode: 401, StatusText: "Unauthorized"}}
	withServices(t, &Services{Pipeline: newPipeline(summarizer)})
	path := writeFile(t, "report.pdf", "%PDF-1.4")

	stdout, _, err := executeCommand(t, "", "summarize", path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSummarization)
	assert.Empty(t, stdout)
}

func TestSummarizeCmd_Copy(t *testing.T) {
	summarizer := &stubSummarizer{bullets: []string{"A", "B"}}
	clip := &fakeClipboard{}
	withServices(t, &Services{Pipeline: newPipeline(summarizer), Clipboard: clip})
	path := writeFile(t, "report.pdf", "%PDF-1.4")

	_, stderr, err := executeCommand(t, "", "summarize", "--copy", path)

	require.NoError(t, err)
	assert.Equal(t, "• A\n• B", clip.text)
	assert.Contains(t, stderr, "Copied 2 bullets")
}

func TestSummarizeCmd_CopyWithoutClipboard(t *testing.T) {
	summarizer := &stubSummarizer{bullets: []string{"A"}}
	withServices(t, &Services{Pipeline: newPipeline(summarizer)})
	path := writeFile(t, "report.pdf", "%PDF-1.4")

	_, _, err := executeCommand(t, "", "summarize", "-c", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "clipboard not configured")
	assert.Zero(t, summarizer.calls)
}

func TestSummarizeCmd_CopyFailure(t *testing.T) {
	summarizer := &stubSummarizer{bullets: []string{"A"}}
	withServices(t, &Services{Pipeline: newPipeline(summarizer), Clipboard: &fakeClipboard{err: errBoom}})
	path := writeFile(t, "report.pdf", "%PDF-1.4")

	_, _, err := executeCommand(t, "", "summarize", "--copy", path)

	assert.ErrorIs(t, err, errBoom)
}

func TestSummarizeCmd_WatchWithoutWatcher(t *testing.T) {
	summarizer := &stubSummarizer{bullets: []string{"A"}}
	withServices(t, &Services{Pipeline: newPipeline(summarizer)})
	path := writeFile(t, "report.pdf", "%PDF-1.4")

	_, _, err := executeCommand(t, "", "summarize", "--watch", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "document watcher not configured")
}

func TestParseLengthFlag(t *testing.T) {
	tests := []struct {
		input   string
		want    domain.LengthPreference
		wantErr bool
	}{
		{"short", domain.LengthShort, false},
		{"MEDIUM", domain.LengthMedium, false},
		{"Long", domain.LengthLong, false},
		{"", "", true},
		{"brief", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLengthFlag(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
