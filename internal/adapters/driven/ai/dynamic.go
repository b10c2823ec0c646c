package ai

import (
	"context"
	"sync"

	"github.com/custodia-labs/docdigest/internal/core/domain"
	"github.com/custodia-labs/docdigest/internal/core/ports/driven"
	"github.com/custodia-labs/docdigest/internal/logger"
)

// Ensure SettingsSummarizer implements the interface.
var _ driven.Summarizer = (*SettingsSummarizer)(nil)

// SettingsLoader returns the current application settings.
type SettingsLoader func() (*domain.AppSettings, error)

// SettingsSummarizer builds the configured summarizer on first use and
// rebuilds it whenever the summarizer settings change, so edits made in the
// settings screen apply to the next summary.
type SettingsSummarizer struct {
	load    SettingsLoader
	prompts driven.PromptStore

	mu      sync.Mutex
	current driven.Summarizer
	built   domain.SummarizerSettings
}

// NewSettingsSummarizer creates a summarizer that follows the settings
// returned by load. prompts may be nil.
func NewSettingsSummarizer(load SettingsLoader, prompts driven.PromptStore) *SettingsSummarizer {
	return &SettingsSummarizer{load: load, prompts: prompts}
}

// Summarize delegates to the summarizer for the current settings.
func (s *SettingsSummarizer) Summarize(
	ctx context.Context,
	text string,
	length domain.LengthPreference,
) (*domain.SummaryResult, error) {
	summarizer, err := s.resolve()
	if err != nil {
		return nil, err
	}
	return summarizer.Summarize(ctx, text, length)
}

// Ping checks the summarizer for the current settings.
func (s *SettingsSummarizer) Ping(ctx context.Context) error {
	summarizer, err := s.resolve()
	if err != nil {
		return err
	}
	return summarizer.Ping(ctx)
}

// Close releases the current summarizer, if any.
func (s *SettingsSummarizer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	err := s.current.Close()
	s.current = nil
	return err
}

func (s *SettingsSummarizer) resolve() (driven.Summarizer, error) {
	settings, err := s.load()
	if err != nil {
		return nil, err
	}
	cfg := settings.Summarizer

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.built == cfg {
		return s.current, nil
	}

	next, err := CreateSummarizer(&cfg, s.prompts)
	if err != nil {
		return nil, err
	}
	if s.current != nil {
		if err := s.current.Close(); err != nil {
			logger.Warn("close previous summarizer: %v", err)
		}
	}
	s.current, s.built = next, cfg
	logger.Debug("summarizer: using %s %s", cfg.Provider, cfg.Model)
	return next, nil
}
