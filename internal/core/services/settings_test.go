package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docdigest/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/docdigest/internal/core/domain"
)

// stubResolver treats values prefixed with "ENV=" as references.
type stubResolver struct {
	values map[string]string
	err    error
}

func (r *stubResolver) IsReference(value string) bool {
	return strings.HasPrefix(value, "ENV=")
}

func (r *stubResolver) Resolve(value string) (string, error) {
	if !r.IsReference(value) {
		return value, nil
	}
	if r.err != nil {
		return "", r.err
	}
	return r.values[strings.TrimPrefix(value, "ENV=")], nil
}

type stubValidator struct {
	calls int
	got   *domain.SummarizerSettings
	err   error
}

func (v *stubValidator) ValidateSummarizer(cfg *domain.SummarizerSettings) error {
	v.calls++
	v.got = cfg
	return v.err
}

func newTestSettings(values map[string]any, env map[string]string) (*SettingsService, *memory.ConfigStore) {
	store := memory.NewConfigStore(values)
	service := NewSettingsService(store, &stubResolver{values: env}, nil)
	service.getenv = func(key string) string { return env[key] }
	return service, store
}

func TestNewSettingsService(t *testing.T) {
	service, _ := newTestSettings(nil, nil)
	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service, _ := newTestSettings(nil, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	service, _ := newTestSettings(map[string]any{
		"summarizer.provider":            "openai",
		"summarizer.model":               "gpt-4o",
		"summarizer.api_key":             "sk-inline",
		"summarizer.timeout":             "30s",
		"summarizer.requests_per_minute": int64(12),
		"ocr.language":                   "eng+deu",
		"ocr.engine_mode":                int64(0),
		"pdf.validate":                   false,
		"documents.max_size_mb":          int64(5),
		"summary.default_length":         "long",
	}, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.ProviderOpenAI, settings.Summarizer.Provider)
	assert.Equal(t, "gpt-4o", settings.Summarizer.Model)
	assert.Equal(t, "sk-inline", settings.Summarizer.APIKey)
	assert.Equal(t, 30*time.Second, settings.Summarizer.Timeout)
	assert.Equal(t, 12, settings.Summarizer.RequestsPerMinute)
	assert.Equal(t, "eng+deu", settings.OCR.Language)
	assert.Equal(t, 0, settings.OCR.EngineMode)
	assert.False(t, settings.PDF.Validate)
	assert.Equal(t, 5, settings.Documents.MaxSizeMB)
	assert.Equal(t, domain.LengthLong, settings.DefaultLength)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	service, _ := newTestSettings(map[string]any{
		"summarizer.provider":    "invalid_provider",
		"summary.default_length": "enormous",
	}, nil)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.ProviderCohere, settings.Summarizer.Provider)
	assert.Equal(t, domain.LengthMedium, settings.DefaultLength)
}

func TestSettingsService_Get_EnvOverridesConfig(t *testing.T) {
	service, _ := newTestSettings(
		map[string]any{"summarizer.api_key": "from-config"},
		map[string]string{APIKeyEnv: "from-env"},
	)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "from-env", settings.Summarizer.APIKey)
	assert.Equal(t, "env "+APIKeyEnv, service.KeySource())
}

func TestSettingsService_Get_ResolvesReference(t *testing.T) {
	service, _ := newTestSettings(
		map[string]any{"summarizer.api_key": "ENV=COHERE_API_KEY"},
		map[string]string{"COHERE_API_KEY": "resolved"},
	)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "resolved", settings.Summarizer.APIKey)
	assert.Equal(t, "ENV=COHERE_API_KEY", service.KeySource())
}

func TestSettingsService_Get_UnresolvableReferenceLeavesKeyEmpty(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{"summarizer.api_key": "ENV=MISSING"})
	service := NewSettingsService(store, &stubResolver{err: errors.New("environment variable MISSING is not set")}, nil)
	service.getenv = func(string) string { return "" }

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Empty(t, settings.Summarizer.APIKey)

	err = service.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSummarizerNotConfigured)
	assert.Contains(t, err.Error(), "MISSING")
}

func TestSettingsService_Save_PreservesReference(t *testing.T) {
	service, store := newTestSettings(
		map[string]any{"summarizer.api_key": "ENV=COHERE_API_KEY"},
		map[string]string{"COHERE_API_KEY": "resolved"},
	)

	settings, err := service.Get()
	require.NoError(t, err)
	settings.OCR.Language = "fra"

	require.NoError(t, service.Save(settings))

	assert.Equal(t, "ENV=COHERE_API_KEY", store.GetString("summarizer.api_key"))
	assert.Equal(t, "fra", store.GetString("ocr.language"))
}

func TestSettingsService_Save_WritesChangedKey(t *testing.T) {
	service, store := newTestSettings(map[string]any{"summarizer.api_key": "old"}, nil)

	settings, err := service.Get()
	require.NoError(t, err)
	settings.Summarizer.APIKey = "new"

	require.NoError(t, service.Save(settings))
	assert.Equal(t, "new", store.GetString("summarizer.api_key"))
}

func TestSettingsService_Save_Nil(t *testing.T) {
	service, _ := newTestSettings(nil, nil)
	assert.ErrorIs(t, service.Save(nil), domain.ErrInvalidInput)
}

func TestSettingsService_SetSummarizer(t *testing.T) {
	tests := []struct {
		name      string
		provider  domain.SummarizerProvider
		model     string
		apiKey    string
		wantModel string
		wantURL   string
		wantErr   string
	}{
		{
			name:     "cohere with key",
			provider: domain.ProviderCohere,
			apiKey:   "co-key",
		},
		{
			name:      "openai default model",
			provider:  domain.ProviderOpenAI,
			apiKey:    "sk-key",
			wantModel: "gpt-4o-mini",
		},
		{
			name:      "anthropic custom model",
			provider:  domain.ProviderAnthropic,
			model:     "claude-3-haiku",
			apiKey:    "ak-key",
			wantModel: "claude-3-haiku",
		},
		{
			name:      "ollama needs no key",
			provider:  domain.ProviderOllama,
			wantModel: "llama3.2",
			wantURL:   "http://localhost:11434",
		},
		{
			name:     "cloud provider without key",
			provider: domain.ProviderOpenAI,
			wantErr:  "API key required",
		},
		{
			name:     "invalid provider",
			provider: domain.SummarizerProvider("bogus"),
			wantErr:  "invalid summarizer provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := newTestSettings(nil, nil)

			err := service.SetSummarizer(tt.provider, tt.model, tt.apiKey)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			settings, err := service.Get()
			require.NoError(t, err)
			assert.Equal(t, tt.provider, settings.Summarizer.Provider)
			assert.Equal(t, tt.wantModel, settings.Summarizer.Model)
			assert.Equal(t, tt.wantURL, settings.Summarizer.BaseURL)
			assert.Equal(t, tt.apiKey, store.GetString("summarizer.api_key"))
		})
	}
}

func TestSettingsService_SetSummarizer_KeepsStoredKey(t *testing.T) {
	service, store := newTestSettings(map[string]any{"summarizer.api_key": "ENV=OPENAI_API_KEY"},
		map[string]string{"OPENAI_API_KEY": "sk-env"})

	require.NoError(t, service.SetSummarizer(domain.ProviderOpenAI, "", ""))

	assert.Equal(t, "ENV=OPENAI_API_KEY", store.GetString("summarizer.api_key"))
}

func TestSettingsService_SetSummarizer_StoresReference(t *testing.T) {
	service, store := newTestSettings(nil, map[string]string{"COHERE_API_KEY": "co"})

	require.NoError(t, service.SetSummarizer(domain.ProviderCohere, "", "ENV=COHERE_API_KEY"))

	assert.Equal(t, "ENV=COHERE_API_KEY", store.GetString("summarizer.api_key"))
	assert.Equal(t, "ENV=COHERE_API_KEY", service.KeySource())
}

func TestSettingsService_SetSummarizer_BadReference(t *testing.T) {
	store := memory.NewConfigStore(nil)
	service := NewSettingsService(store, &stubResolver{err: errors.New("not set")}, nil)
	service.getenv = func(string) string { return "" }

	err := service.SetSummarizer(domain.ProviderCohere, "", "ENV=NOPE")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key reference")
	_, exists := store.Get("summarizer.api_key")
	assert.False(t, exists)
}

func TestSettingsService_SetOCRLanguage(t *testing.T) {
	service, store := newTestSettings(nil, nil)

	require.NoError(t, service.SetOCRLanguage("deu"))
	assert.Equal(t, "deu", store.GetString("ocr.language"))

	assert.ErrorIs(t, service.SetOCRLanguage(""), domain.ErrInvalidInput)
}

func TestSettingsService_SetDefaultLength(t *testing.T) {
	service, store := newTestSettings(nil, nil)

	require.NoError(t, service.SetDefaultLength(domain.LengthShort))
	assert.Equal(t, "short", store.GetString("summary.default_length"))

	require.NoError(t, service.SetDefaultLength("garbage"))
	assert.Equal(t, "medium", store.GetString("summary.default_length"))
}

func TestSettingsService_KeySource(t *testing.T) {
	service, _ := newTestSettings(nil, nil)
	assert.Empty(t, service.KeySource())

	service, _ = newTestSettings(map[string]any{"summarizer.api_key": "inline"}, nil)
	assert.Equal(t, "config", service.KeySource())
}

func TestSettingsService_Validate(t *testing.T) {
	service, _ := newTestSettings(nil, nil)
	err := service.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSummarizerNotConfigured)

	service, _ = newTestSettings(map[string]any{"summarizer.api_key": "k"}, nil)
	assert.NoError(t, service.Validate())

	service, _ = newTestSettings(map[string]any{"summarizer.provider": "ollama"}, nil)
	assert.NoError(t, service.Validate())

	service, _ = newTestSettings(map[string]any{
		"summarizer.api_key":    "k",
		"documents.max_size_mb": int64(0),
	}, nil)
	assert.Error(t, service.Validate())
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service, _ := newTestSettings(nil, nil)
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

func TestSettingsService_ValidateSummarizerConfig(t *testing.T) {
	service, _ := newTestSettings(nil, nil)
	assert.NoError(t, service.ValidateSummarizerConfig())

	validator := &stubValidator{err: errors.New("unreachable")}
	store := memory.NewConfigStore(map[string]any{
		"summarizer.provider": "openai",
		"summarizer.api_key":  "sk",
	})
	service = NewSettingsService(store, nil, validator)
	service.getenv = func(string) string { return "" }

	err := service.ValidateSummarizerConfig()

	require.Error(t, err)
	assert.Equal(t, 1, validator.calls)
	assert.Equal(t, domain.ProviderOpenAI, validator.got.Provider)
	assert.Equal(t, "sk", validator.got.APIKey)
}
