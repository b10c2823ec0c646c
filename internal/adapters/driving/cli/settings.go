package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docdigest/internal/core/domain"
)

var (
	summarizerProvider string
	summarizerModel    string
	summarizerKey      string
	summarizerNoPing   bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the summarization service, OCR and defaults.

Settings are stored in ~/.docdigest/config.toml. The API key may be written
inline or as a reference (ENV=NAME, FILE=/run/secrets/name or ${NAME}).
DOCDIGEST_API_KEY overrides any configured key.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSummarizerCmd = &cobra.Command{
	Use:   "summarizer",
	Short: "Configure the summarization service",
	Long: `Configure the service used to produce bullet points.

Without --provider this runs interactively and reads the API key without echo.

Providers:
  cohere    - Cohere summarize endpoint (API key)
  openai    - OpenAI chat model (API key)
  anthropic - Anthropic model (API key)
  ollama    - local Ollama model`,
	Args: cobra.NoArgs,
	RunE: runSettingsSummarizer,
}

var settingsOCRCmd = &cobra.Command{
	Use:   "ocr LANGUAGE",
	Short: "Set the OCR language",
	Long: `Set the tesseract language model used for images, e.g. "eng" or "eng+deu".
The language data must be installed for tesseract.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsOCR,
}

var settingsLengthCmd = &cobra.Command{
	Use:   "length short|medium|long",
	Short: "Set the default summary length",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsLength,
}

func init() {
	settingsSummarizerCmd.Flags().StringVar(&summarizerProvider, "provider", "", "provider: cohere, openai, anthropic or ollama")
	settingsSummarizerCmd.Flags().StringVar(&summarizerModel, "model", "", "model name (LLM providers)")
	settingsSummarizerCmd.Flags().StringVar(&summarizerKey, "key", "", "API key or reference such as ENV=COHERE_API_KEY")
	settingsSummarizerCmd.Flags().BoolVar(&summarizerNoPing, "no-validate", false, "skip the connectivity check")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSummarizerCmd)
	settingsCmd.AddCommand(settingsOCRCmd)
	settingsCmd.AddCommand(settingsLengthCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	s := settings.Summarizer
	cmd.Println("[Summarizer]")
	cmd.Printf("  Provider: %s\n", s.Provider.Description())
	if s.Model != "" {
		cmd.Printf("  Model: %s\n", s.Model)
	}
	if s.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", s.BaseURL)
	}
	if s.Provider.RequiresAPIKey() {
		if s.APIKey != "" {
			cmd.Printf("  API Key: %s (%s)\n", maskAPIKey(s.APIKey), settingsService.KeySource())
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	cmd.Printf("  Timeout: %s\n", s.Timeout)
	if s.RequestsPerMinute > 0 {
		cmd.Printf("  Rate limit: %d/min\n", s.RequestsPerMinute)
	}
	status := "configured"
	if !s.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[OCR]")
	cmd.Printf("  Command: %s\n", settings.OCR.Command)
	cmd.Printf("  Language: %s\n", settings.OCR.Language)
	cmd.Printf("  Engine mode: %d\n", settings.OCR.EngineMode)
	cmd.Printf("  Timeout: %s\n", settings.OCR.Timeout)
	cmd.Println()

	cmd.Println("[Documents]")
	cmd.Printf("  Max size: %s\n", humanize.IBytes(uint64(settings.Documents.MaxSizeMB)*humanize.MiByte))
	cmd.Printf("  PDF validation: %s\n", yesNo(settings.PDF.Validate))
	cmd.Printf("  Default length: %s\n", settings.DefaultLength.Description())
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'docdigest settings summarizer' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSummarizer(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var (
		provider domain.SummarizerProvider
		model    = summarizerModel
		apiKey   = summarizerKey
	)

	if summarizerProvider != "" {
		provider = domain.SummarizerProvider(strings.ToLower(summarizerProvider))
		if !provider.IsValid() {
			return fmt.Errorf("invalid provider %q", summarizerProvider)
		}
	} else {
		reader := bufio.NewReader(cmd.InOrStdin())

		cmd.Println("Select Summarization Provider")
		providers := domain.AllSummarizerProviders()
		for i, p := range providers {
			cmd.Printf("  %d. %s\n", i+1, p.Description())
		}
		cmd.Print("\nEnter choice [1]: ")
		idx := parseChoice(readLine(reader), len(providers), 1)
		provider = providers[idx-1]

		if defaultModel, ok := domain.DefaultSummarizerModels()[provider]; ok {
			cmd.Printf("Enter model name [%s]: ", defaultModel)
			model = readLine(reader)
			if model == "" {
				model = defaultModel
			}
		}

		if provider.RequiresAPIKey() {
			cmd.Print("Enter API key or reference (blank keeps the current key): ")
			apiKey = readPassword(cmd.InOrStdin(), reader)
			cmd.Println()
		}
	}

	if err := settingsService.SetSummarizer(provider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure summarizer: %w", err)
	}

	if !summarizerNoPing {
		cmd.Print("Validating configuration... ")
		if err := settingsService.ValidateSummarizerConfig(); err != nil {
			cmd.Printf("FAILED: %v\n", err)
			return fmt.Errorf("summarizer configuration validation failed: %w", err)
		}
		cmd.Println("OK")
	}

	cmd.Printf("Summarizer configured: %s\n", provider.Description())
	return nil
}

func runSettingsOCR(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.SetOCRLanguage(args[0]); err != nil {
		return fmt.Errorf("failed to set OCR language: %w", err)
	}
	cmd.Printf("OCR language set to: %s\n", args[0])
	return nil
}

func runSettingsLength(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	length, err := parseLengthFlag(args[0])
	if err != nil {
		return err
	}
	if err := settingsService.SetDefaultLength(length); err != nil {
		return fmt.Errorf("failed to set default length: %w", err)
	}
	cmd.Printf("Default length set to: %s\n", length.Description())
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when in is a terminal.
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
