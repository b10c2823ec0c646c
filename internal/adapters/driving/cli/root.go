// Package cli provides the docdigest command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdigest/internal/core/ports/driven"
	"github.com/custodia-labs/docdigest/internal/core/ports/driving"
	"github.com/custodia-labs/docdigest/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services holds everything the commands need.
type Services struct {
	Pipeline  driving.PipelineService
	Settings  driving.SettingsService
	Clipboard driven.Clipboard
	Watcher   driven.DocumentWatcher
}

// Bootstrap builds services once flags are parsed. configDir is the value
// of --config-dir and may be empty.
type Bootstrap func(configDir string) (*Services, error)

var (
	pipelineService driving.PipelineService
	settingsService driving.SettingsService
	clipboardWriter driven.Clipboard
	documentWatcher driven.DocumentWatcher

	bootstrap Bootstrap
)

var rootCmd = &cobra.Command{
	Use:   "docdigest",
	Short: "Summarize PDFs and images into bullet points",
	Long: `docdigest extracts text from a PDF or an image (PNG, JPG, JPEG) and
asks a summarization service for a short list of bullet points.

PDF text is read page by page. Images go through OCR with tesseract.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.docdigest)")
}

// SetServices injects the services used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	pipelineService = s.Pipeline
	settingsService = s.Settings
	clipboardWriter = s.Clipboard
	documentWatcher = s.Watcher
}

// SetBootstrap registers a function that builds services after flag parsing.
func SetBootstrap(fn Bootstrap) {
	bootstrap = fn
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil {
		return nil
	}
	services, err := bootstrap(configDir)
	if err != nil {
		return err
	}
	SetServices(services)
	SetTUIConfig(&TUIConfig{
		Pipeline:  services.Pipeline,
		Settings:  services.Settings,
		Clipboard: services.Clipboard,
	})
	return nil
}
