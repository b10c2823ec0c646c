// Command docdigest summarizes PDFs and images into bullet points.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/docdigest/internal/adapters/driven/ai"
	"github.com/custodia-labs/docdigest/internal/adapters/driven/clipboard"
	"github.com/custodia-labs/docdigest/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docdigest/internal/adapters/driven/config/secret"
	"github.com/custodia-labs/docdigest/internal/adapters/driven/filesystem"
	"github.com/custodia-labs/docdigest/internal/adapters/driven/ocr/tesseract"
	"github.com/custodia-labs/docdigest/internal/adapters/driven/pdfengine"
	"github.com/custodia-labs/docdigest/internal/adapters/driving/cli"
	"github.com/custodia-labs/docdigest/internal/core/services"
	"github.com/custodia-labs/docdigest/internal/extractors"
	"github.com/custodia-labs/docdigest/internal/extractors/image"
	"github.com/custodia-labs/docdigest/internal/extractors/pdf"
)

// pdfPageWorkers bounds concurrent page reads per document.
const pdfPageWorkers = 4

func main() {
	cli.SetBootstrap(bootstrap)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

func bootstrap(configDir string) (*cli.Services, error) {
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config directory: %w", err)
		}
		configDir = dir
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	settingsService := services.NewSettingsService(store, secret.NewResolver(configDir), ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	prompts, err := file.NewPromptStore(filepath.Join(configDir, "prompts"))
	if err != nil {
		return nil, err
	}

	// Built lazily from the live settings so changes made in the settings
	// screen apply without a restart.
	summarizer := ai.NewSettingsSummarizer(settingsService.Get, prompts)

	registry := extractors.NewRegistry(
		pdf.New(
			pdfengine.New(pdfengine.WithValidation(settings.PDF.Validate)),
			pdf.WithConcurrency(pdfPageWorkers),
		),
		image.New(
			tesseract.New(settings.OCR.Command, settings.OCR.Timeout),
			image.WithLanguage(settings.OCR.Language),
			image.WithEngineMode(settings.OCR.EngineMode),
		),
	)

	pipeline := services.NewPipelineOrchestrator(
		registry,
		summarizer,
		filesystem.NewLoader(settings.Documents.MaxSizeMB),
		settings.DefaultLength.Normalize(),
	)

	return &cli.Services{
		Pipeline:  pipeline,
		Settings:  settingsService,
		Clipboard: clipboard.New(),
		Watcher:   filesystem.NewWatcher(0),
	}, nil
}
