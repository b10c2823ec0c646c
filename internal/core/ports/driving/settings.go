package driving

import "github.com/custodia-labs/docdigest/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings with the API key resolved.
	// An unresolvable key reference leaves APIKey empty; Validate reports why.
	Get() (*domain.AppSettings, error)

	// Save persists application settings. A stored key reference is kept
	// unless settings carries a different key.
	Save(settings *domain.AppSettings) error

	// SetSummarizer configures the summarization provider.
	// apiKey may be an inline key or a secret reference (ENV=, FILE=, ${VAR}).
	// An empty apiKey keeps the stored one.
	SetSummarizer(provider domain.SummarizerProvider, model, apiKey string) error

	// SetOCRLanguage sets the OCR language model.
	SetOCRLanguage(language string) error

	// SetDefaultLength sets the initial length preference.
	SetDefaultLength(length domain.LengthPreference) error

	// KeySource describes where the API key comes from without revealing it,
	// e.g. "env DOCDIGEST_API_KEY", "ENV=COHERE_API_KEY", "config" or "".
	KeySource() string

	// Validate checks the current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateSummarizerConfig validates the summarizer by pinging the provider.
	ValidateSummarizerConfig() error
}
