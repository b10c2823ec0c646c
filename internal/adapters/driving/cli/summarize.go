package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdigest/internal/core/domain"
)

var (
	summarizeLength string
	summarizeJSON   bool
	summarizeCopy   bool
	summarizeWatch  bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize FILE",
	Short: "Summarize a PDF or image into bullet points",
	Long: `Extracts text from FILE and prints a bullet point summary.

Supported files are PDF, PNG, JPG and JPEG. Images are read with OCR.

Lengths:
  short  - a few key points
  medium - balanced (default)
  long   - detailed coverage

With --watch the file is summarized again every time it is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeLength, "length", "l", "", "summary length: short, medium or long")
	summarizeCmd.Flags().BoolVar(&summarizeJSON, "json", false, "output the summary as JSON")
	summarizeCmd.Flags().BoolVarP(&summarizeCopy, "copy", "c", false, "copy the bullets to the clipboard")
	summarizeCmd.Flags().BoolVarP(&summarizeWatch, "watch", "w", false, "re-summarize when the file changes")
	rootCmd.AddCommand(summarizeCmd)
}

// summaryJSON is the --json output shape.
type summaryJSON struct {
	Document    string    `json:"document"`
	Length      string    `json:"length"`
	Bullets     []string  `json:"bullets"`
	GeneratedAt time.Time `json:"generated_at"`
}

func runSummarize(cmd *cobra.Command, args []string) error {
	path := args[0]

	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}
	if summarizeCopy && clipboardWriter == nil {
		return errors.New("clipboard not configured")
	}

	if summarizeLength != "" {
		length, err := parseLengthFlag(summarizeLength)
		if err != nil {
			return err
		}
		pipelineService.SetLength(length)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if !summarizeWatch {
		return summarizeOnce(ctx, cmd, path)
	}

	if documentWatcher == nil {
		return errors.New("document watcher not configured")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if err := summarizeOnce(ctx, cmd, path); err != nil {
		cmd.PrintErrf("Error: %v\n", err)
	}
	cmd.PrintErrf("Watching %s for changes (Ctrl+C to stop)\n", path)

	err := documentWatcher.Watch(ctx, path, func() {
		cmd.PrintErrf("\n%s changed\n", path)
		if err := summarizeOnce(ctx, cmd, path); err != nil {
			cmd.PrintErrf("Error: %v\n", err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func summarizeOnce(ctx context.Context, cmd *cobra.Command, path string) error {
	doc, err := pipelineService.OpenDocument(ctx, path)
	if err != nil {
		return err
	}

	state := pipelineService.State()
	cmd.PrintErrf("Summarizing %s (%s, %s, %s)...\n",
		doc.Name, doc.MediaType, humanize.IBytes(uint64(doc.Size)), state.Length)

	result, err := pipelineService.Generate(ctx)
	if err != nil {
		return err
	}

	if summarizeJSON {
		if err := outputSummaryJSON(cmd, result); err != nil {
			return err
		}
	} else {
		outputSummaryText(cmd, result)
	}

	if summarizeCopy {
		if err := clipboardWriter.WriteText(result.ClipboardText()); err != nil {
			return err
		}
		cmd.PrintErrf("Copied %d bullets to the clipboard.\n", len(result.Bullets))
	}
	return nil
}

func outputSummaryJSON(cmd *cobra.Command, result *domain.SummaryResult) error {
	data, err := json.MarshalIndent(summaryJSON{
		Document:    result.DocumentName,
		Length:      result.Length.String(),
		Bullets:     result.Bullets,
		GeneratedAt: result.GeneratedAt,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSummaryText(cmd *cobra.Command, result *domain.SummaryResult) {
	cmd.Println(result.ClipboardText())
}

// parseLengthFlag is stricter than domain.ParseLength so typos are reported.
func parseLengthFlag(s string) (domain.LengthPreference, error) {
	for _, l := range domain.AllLengths() {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return "", fmt.Errorf("invalid length %q: use short, medium or long", s)
}
