// Package ai provides factory functions for creating summarizer adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/custodia-labs/docdigest/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/custodia-labs/docdigest/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/docdigest/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/docdigest/internal/adapters/driven/ratelimit"
	"github.com/custodia-labs/docdigest/internal/adapters/driven/summarizer/cohere"
	llmsummarizer "github.com/custodia-labs/docdigest/internal/adapters/driven/summarizer/llm"
	"github.com/custodia-labs/docdigest/internal/core/domain"
	"github.com/custodia-labs/docdigest/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateSummarizer creates the summarizer selected by settings. The prompt
// store is handed to LLM-backed summarizers and may be nil.
func CreateSummarizer(settings *domain.SummarizerSettings, prompts driven.PromptStore) (driven.Summarizer, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, fmt.Errorf("%w. Run 'docdigest settings summarizer' to fix", domain.ErrSummarizerNotConfigured)
	}

	limiter := ratelimit.New(settings.RequestsPerMinute)

	if settings.Provider == domain.ProviderCohere {
		s, err := cohere.New(cohere.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Timeout: settings.Timeout,
			Limiter: limiter,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	llm, err := CreateLLMService(settings)
	if err != nil {
		return nil, err
	}

	s := llmsummarizer.New(llm, limiter)
	if prompts != nil {
		s.SetPromptStore(prompts)
	}
	return s, nil
}

// ValidateSummarizerConfig creates a summarizer and pings it.
// This is intended for use in settings commands to validate credentials on configuration.
func ValidateSummarizerConfig(settings *domain.SummarizerSettings) error {
	if settings == nil || !settings.IsConfigured() {
		return nil
	}

	svc, err := CreateSummarizer(settings, nil)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// CreateLLMService creates the model service behind an LLM-backed provider.
func CreateLLMService(settings *domain.SummarizerSettings) (driven.LLMService, error) {
	switch settings.Provider {
	case domain.ProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: settings.Timeout,
		}), nil

	case domain.ProviderOpenAI:
		svc, err := openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: settings.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil

	case domain.ProviderAnthropic:
		svc, err := anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: settings.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return svc, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}
