package domain

import "time"

const unknownDescription = "Unknown"

// SummarizerProvider identifies the service that turns text into bullets.
type SummarizerProvider string

// Available summarizer providers.
const (
	// ProviderCohere is the Cohere summarize endpoint.
	ProviderCohere SummarizerProvider = "cohere"

	// ProviderOpenAI prompts an OpenAI chat model for bullets.
	ProviderOpenAI SummarizerProvider = "openai"

	// ProviderAnthropic prompts an Anthropic model for bullets.
	ProviderAnthropic SummarizerProvider = "anthropic"

	// ProviderOllama prompts a local Ollama model for bullets.
	ProviderOllama SummarizerProvider = "ollama"
)

// IsValid returns true if the provider is recognised.
func (p SummarizerProvider) IsValid() bool {
	switch p {
	case ProviderCohere, ProviderOpenAI, ProviderAnthropic, ProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p SummarizerProvider) RequiresAPIKey() bool {
	return p == ProviderCohere || p == ProviderOpenAI || p == ProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p SummarizerProvider) IsLocal() bool {
	return p == ProviderOllama
}

// String returns the string representation.
func (p SummarizerProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p SummarizerProvider) Description() string {
	switch p {
	case ProviderCohere:
		return "Cohere Summarize (cloud)"
	case ProviderOpenAI:
		return "OpenAI (cloud)"
	case ProviderAnthropic:
		return "Anthropic (cloud)"
	case ProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// AllSummarizerProviders returns providers in display order.
func AllSummarizerProviders() []SummarizerProvider {
	return []SummarizerProvider{
		ProviderCohere,
		ProviderOpenAI,
		ProviderAnthropic,
		ProviderOllama,
	}
}

// DefaultSummarizerModels returns default models for each provider.
// Cohere's summarize endpoint takes no model.
func DefaultSummarizerModels() map[SummarizerProvider]string {
	return map[SummarizerProvider]string{
		ProviderOpenAI:    "gpt-4o-mini",
		ProviderAnthropic: "claude-3-5-sonnet-latest",
		ProviderOllama:    "llama3.2",
	}
}

// SummarizerSettings holds summarization service configuration.
type SummarizerSettings struct {
	// Provider is the summarization backend.
	Provider SummarizerProvider

	// Model is the model name for LLM-backed providers.
	Model string

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// APIKey is the resolved credential. Never logged.
	APIKey string

	// Timeout bounds a single request.
	Timeout time.Duration

	// RequestsPerMinute throttles calls to the paid service. Zero disables it.
	RequestsPerMinute int
}

// IsConfigured returns true if the summarizer is set up.
func (s SummarizerSettings) IsConfigured() bool {
	if !s.Provider.IsValid() {
		return false
	}
	if s.Provider.RequiresAPIKey() && s.APIKey == "" {
		return false
	}
	return true
}

// OCRSettings holds image recognition configuration.
type OCRSettings struct {
	// Command is the tesseract executable name or path.
	Command string

	// Language is the tesseract language model, e.g. "eng".
	Language string

	// EngineMode is the tesseract OCR engine mode (1 = LSTM only).
	EngineMode int

	// Timeout bounds a single recognition.
	Timeout time.Duration
}

// PDFSettings holds paginated-document extraction configuration.
type PDFSettings struct {
	// Validate runs a structural preflight before text extraction.
	Validate bool
}

// DocumentSettings holds document loading limits.
type DocumentSettings struct {
	// MaxSizeMB rejects larger files at load time.
	MaxSizeMB int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Summarizer holds summarization service settings.
	Summarizer SummarizerSettings

	// OCR holds image recognition settings.
	OCR OCRSettings

	// PDF holds paginated-document settings.
	PDF PDFSettings

	// Documents holds loading limits.
	Documents DocumentSettings

	// DefaultLength is the initial length preference.
	DefaultLength LengthPreference
}

// DefaultAppSettings returns settings with sensible defaults.
// The summarizer has no API key by default; users must configure one.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Summarizer: SummarizerSettings{
			Provider: ProviderCohere,
			Timeout:  60 * time.Second,
		},
		OCR: OCRSettings{
			Command:    "tesseract",
			Language:   "eng",
			EngineMode: 1,
			Timeout:    2 * time.Minute,
		},
		PDF: PDFSettings{
			Validate: true,
		},
		Documents: DocumentSettings{
			MaxSizeMB: 20,
		},
		DefaultLength: DefaultLength,
	}
}
