package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/docdigest/internal/core/domain"
	"github.com/custodia-labs/docdigest/internal/core/ports/driven"
	"github.com/custodia-labs/docdigest/internal/core/ports/driving"
	"github.com/custodia-labs/docdigest/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// APIKeyEnv overrides any configured summarizer API key.
//
//nolint:gosec // G101: environment variable name, not a credential.
const APIKeyEnv = "DOCDIGEST_API_KEY"

// defaultOllamaURL is used when a local provider has no base URL.
const defaultOllamaURL = "http://localhost:11434"

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyProvider          = "summarizer.provider"
	keyModel             = "summarizer.model"
	keyBaseURL           = "summarizer.base_url"
	keyAPIKey            = "summarizer.api_key"
	keyTimeout           = "summarizer.timeout"
	keyRequestsPerMinute = "summarizer.requests_per_minute"
	keyOCRCommand        = "ocr.command"
	keyOCRLanguage       = "ocr.language"
	keyOCREngineMode     = "ocr.engine_mode"
	keyOCRTimeout        = "ocr.timeout"
	keyPDFValidate       = "pdf.validate"
	keyMaxSizeMB         = "documents.max_size_mb"
	keyDefaultLength     = "summary.default_length"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	secrets     driven.SecretResolver
	validator   driven.SummarizerValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service. secrets and validator
// may be nil; without a resolver stored keys are used as written.
func NewSettingsService(
	configStore driven.ConfigStore,
	secrets driven.SecretResolver,
	validator driven.SummarizerValidator,
) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		secrets:     secrets,
		validator:   validator,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	apiKey, err := s.resolveAPIKey()
	if err != nil {
		logger.Warn("summarizer api_key: %v", err)
		apiKey = ""
	}

	settings := &domain.AppSettings{
		Summarizer: domain.SummarizerSettings{
			Provider:          s.getProvider(defaults.Summarizer.Provider),
			Model:             s.configStore.GetString(keyModel),
			BaseURL:           s.configStore.GetString(keyBaseURL),
			APIKey:            apiKey,
			Timeout:           s.getDuration(keyTimeout, defaults.Summarizer.Timeout),
			RequestsPerMinute: s.getInt(keyRequestsPerMinute, defaults.Summarizer.RequestsPerMinute),
		},
		OCR: domain.OCRSettings{
			Command:    s.getString(keyOCRCommand, defaults.OCR.Command),
			Language:   s.getString(keyOCRLanguage, defaults.OCR.Language),
			EngineMode: s.getInt(keyOCREngineMode, defaults.OCR.EngineMode),
			Timeout:    s.getDuration(keyOCRTimeout, defaults.OCR.Timeout),
		},
		PDF: domain.PDFSettings{
			Validate: s.getBool(keyPDFValidate, defaults.PDF.Validate),
		},
		Documents: domain.DocumentSettings{
			MaxSizeMB: s.getInt(keyMaxSizeMB, defaults.Documents.MaxSizeMB),
		},
		DefaultLength: domain.ParseLength(s.getString(keyDefaultLength, defaults.DefaultLength.String())),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}

	values := []struct {
		key   string
		value any
	}{
		{keyProvider, settings.Summarizer.Provider.String()},
		{keyModel, settings.Summarizer.Model},
		{keyBaseURL, settings.Summarizer.BaseURL},
		{keyTimeout, settings.Summarizer.Timeout.String()},
		{keyRequestsPerMinute, settings.Summarizer.RequestsPerMinute},
		{keyOCRCommand, settings.OCR.Command},
		{keyOCRLanguage, settings.OCR.Language},
		{keyOCREngineMode, settings.OCR.EngineMode},
		{keyOCRTimeout, settings.OCR.Timeout.String()},
		{keyPDFValidate, settings.PDF.Validate},
		{keyMaxSizeMB, settings.Documents.MaxSizeMB},
		{keyDefaultLength, settings.DefaultLength.Normalize().String()},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Only a changed key is written, so a stored reference survives a
	// round trip through Get and Save.
	if key := settings.Summarizer.APIKey; key != "" {
		current, err := s.resolveAPIKey()
		if err != nil || key != current {
			if err := s.configStore.Set(keyAPIKey, key); err != nil {
				return fmt.Errorf("save %s: %w", keyAPIKey, err)
			}
		}
	}

	return nil
}

// SetSummarizer configures the summarization provider.
func (s *SettingsService) SetSummarizer(provider domain.SummarizerProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid summarizer provider: %s", provider)
	}

	if apiKey != "" && s.secrets != nil && s.secrets.IsReference(apiKey) {
		if _, err := s.secrets.Resolve(apiKey); err != nil {
			return fmt.Errorf("api key reference: %w", err)
		}
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	if provider.RequiresAPIKey() && apiKey == "" && settings.Summarizer.APIKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings.Summarizer.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.Summarizer.Model = model
	} else {
		settings.Summarizer.Model = domain.DefaultSummarizerModels()[provider]
	}

	if provider.IsLocal() {
		if settings.Summarizer.BaseURL == "" {
			settings.Summarizer.BaseURL = defaultOllamaURL
		}
	} else {
		// Cloud providers use their public endpoint.
		settings.Summarizer.BaseURL = ""
	}

	if err := s.Save(settings); err != nil {
		return err
	}

	if apiKey != "" {
		if err := s.configStore.Set(keyAPIKey, apiKey); err != nil {
			return fmt.Errorf("save %s: %w", keyAPIKey, err)
		}
	}
	return nil
}

// SetOCRLanguage sets the tesseract language model, e.g. "eng" or "eng+deu".
func (s *SettingsService) SetOCRLanguage(language string) error {
	if language == "" {
		return fmt.Errorf("%w: OCR language is required", domain.ErrInvalidInput)
	}
	return s.configStore.Set(keyOCRLanguage, language)
}

// SetDefaultLength sets the initial length preference.
func (s *SettingsService) SetDefaultLength(length domain.LengthPreference) error {
	return s.configStore.Set(keyDefaultLength, length.Normalize().String())
}

// KeySource describes where the API key comes from.
func (s *SettingsService) KeySource() string {
	if s.getenv(APIKeyEnv) != "" {
		return "env " + APIKeyEnv
	}
	raw := s.configStore.GetString(keyAPIKey)
	switch {
	case raw == "":
		return ""
	case s.secrets != nil && s.secrets.IsReference(raw):
		return raw
	default:
		return "config"
	}
}

// Validate checks the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Summarizer.Provider.IsValid() {
		return fmt.Errorf("invalid summarizer provider: %s", settings.Summarizer.Provider)
	}

	if settings.Summarizer.Provider.RequiresAPIKey() {
		if _, err := s.resolveAPIKey(); err != nil {
			return fmt.Errorf("%w: api key: %w", domain.ErrSummarizerNotConfigured, err)
		}
		if !settings.Summarizer.IsConfigured() {
			return fmt.Errorf("%w: %s requires an API key (set %s or run 'docdigest settings summarizer')",
				domain.ErrSummarizerNotConfigured, settings.Summarizer.Provider, APIKeyEnv)
		}
	}

	if settings.OCR.Language == "" {
		return errors.New("ocr language is empty")
	}
	if settings.Documents.MaxSizeMB <= 0 {
		return fmt.Errorf("documents.max_size_mb must be positive, got %d", settings.Documents.MaxSizeMB)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateSummarizerConfig validates the current summarizer configuration by pinging the provider.
func (s *SettingsService) ValidateSummarizerConfig() error {
	if s.validator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.validator.ValidateSummarizer(&settings.Summarizer)
}

// resolveAPIKey applies the environment override, then secret resolution.
func (s *SettingsService) resolveAPIKey() (string, error) {
	if key := s.getenv(APIKeyEnv); key != "" {
		return key, nil
	}
	raw := s.configStore.GetString(keyAPIKey)
	if s.secrets == nil {
		return raw, nil
	}
	return s.secrets.Resolve(raw)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getInt distinguishes a stored zero from a missing key.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	if d := s.configStore.GetDuration(key); d > 0 {
		return d
	}
	return defaultVal
}

func (s *SettingsService) getProvider(defaultVal domain.SummarizerProvider) domain.SummarizerProvider {
	provider := domain.SummarizerProvider(s.configStore.GetString(keyProvider))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
