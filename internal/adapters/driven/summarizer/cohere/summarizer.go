// Package cohere provides a Summarizer backed by the Cohere summarize endpoint.
package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/docdigest/internal/adapters/driven/llm/transport"
	"github.com/custodia-labs/docdigest/internal/adapters/driven/ratelimit"
	"github.com/custodia-labs/docdigest/internal/core/domain"
	"github.com/custodia-labs/docdigest/internal/core/ports/driven"
	"github.com/custodia-labs/docdigest/internal/logger"
)

// Ensure Summarizer implements the interface.
var _ driven.Summarizer = (*Summarizer)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.cohere.ai"
	DefaultTimeout = 60 * time.Second

	summaryFormat  = "bullets"
	extractiveness = "medium"
)

// Config holds configuration for the Cohere summarizer.
type Config struct {
	// APIKey is the Cohere API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.cohere.ai).
	BaseURL string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration

	// Limiter throttles requests. Nil disables throttling.
	Limiter *ratelimit.Limiter
}

// Summarizer calls POST {base}/v1/summarize.
type Summarizer struct {
	client  *http.Client
	baseURL string
	apiKey  string
	limiter *ratelimit.Limiter
}

// summarizeRequest is the /v1/summarize request body.
type summarizeRequest struct {
	Text           string `json:"text"`
	Length         string `json:"length"`
	Format         string `json:"format"`
	Extractiveness string `json:"extractiveness"`
}

// summarizeResponse is the /v1/summarize response body.
type summarizeResponse struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
}

// New creates a Cohere summarizer.
func New(cfg Config) (*Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("cohere: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Summarizer{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		limiter: cfg.Limiter,
	}, nil
}

// Summarize makes a single request. A 429 records a backoff for the next
// call but this call still fails.
func (s *Summarizer) Summarize(
	ctx context.Context,
	text string,
	length domain.LengthPreference,
) (*domain.SummaryResult, error) {
	length = length.Normalize()

	if d := s.limiter.Backoff(); d > 0 {
		logger.Info("cohere: rate limited, waiting %s", d.Round(time.Second))
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, &domain.SummarizationError{Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	jsonBody, err := json.Marshal(summarizeRequest{
		Text:           text,
		Length:         length.String(),
		Format:         summaryFormat,
		Extractiveness: extractiveness,
	})
	if err != nil {
		return nil, &domain.SummarizationError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/summarize", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, &domain.SummarizationError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	logger.Debug("cohere: summarizing %d characters (length=%s)", len(text), length)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &domain.SummarizationError{Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusTooManyRequests {
			s.limiter.RecordRateLimitError(ratelimit.ParseRetryAfter(resp.Header.Get("Retry-After"), time.Now()))
		}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Debug("cohere: status %d: %s", resp.StatusCode, string(body))
		return nil, &domain.SummarizationError{
			StatusCode: resp.StatusCode,
			StatusText: transport.StatusText(resp, body),
		}
	}

	var out summarizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &domain.SummarizationError{Err: fmt.Errorf("decode response: %w", err)}
	}

	return &domain.SummaryResult{
		Bullets: domain.ParseBullets(out.Summary),
		Length:  length,
	}, nil
}

// statusInvalidToken is Cohere's answer to an unknown or revoked key.
const statusInvalidToken = 498

// Ping checks the API key with a minimal authenticated request.
// Any response other than 401, 403 or 498 counts as reachable.
func (s *Summarizer) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/check-api-key", http.NoBody)
	if err != nil {
		return fmt.Errorf("cohere: failed to create ping request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("cohere: ping failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden, statusInvalidToken:
		return errors.New("cohere: API key rejected")
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("cohere: API returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases resources.
func (s *Summarizer) Close() error {
	return nil
}
