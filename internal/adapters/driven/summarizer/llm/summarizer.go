// Package llm provides a Summarizer that prompts a chat model for bullets.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/docdigest/internal/adapters/driven/ratelimit"
	"github.com/custodia-labs/docdigest/internal/core/domain"
	"github.com/custodia-labs/docdigest/internal/core/ports/driven"
	"github.com/custodia-labs/docdigest/internal/logger"
)

// Ensure Summarizer implements the interfaces.
var (
	_ driven.Summarizer       = (*Summarizer)(nil)
	_ driven.PromptStoreAware = (*Summarizer)(nil)
)

// DefaultBulletPrompt is used when no PromptStore is configured.
const DefaultBulletPrompt = `Summarise the following document as exactly %d bullet points.
Write one bullet per line. Do not add a heading or closing remarks.

Document:
%s`

// systemInstruction keeps models from wrapping the bullets in prose.
const systemInstruction = "You summarise documents. Answer with bullet points only, one per line, " +
	"using only facts stated in the document."

// BulletCounts maps each length preference to the number of bullets requested.
var BulletCounts = map[domain.LengthPreference]int{
	domain.LengthShort:  3,
	domain.LengthMedium: 5,
	domain.LengthLong:   8,
}

// tokensPerBullet is a rough output budget per bullet.
const tokensPerBullet = 80

// Summarizer adapts an LLMService to the Summarizer port.
type Summarizer struct {
	llm         driven.LLMService
	limiter     *ratelimit.Limiter
	promptStore driven.PromptStore
}

// New creates an LLM-backed summarizer. The limiter may be nil.
func New(llm driven.LLMService, limiter *ratelimit.Limiter) *Summarizer {
	return &Summarizer{llm: llm, limiter: limiter}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (s *Summarizer) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Summarize asks the model for a bulleted summary and parses its answer.
func (s *Summarizer) Summarize(
	ctx context.Context,
	text string,
	length domain.LengthPreference,
) (*domain.SummaryResult, error) {
	length = length.Normalize()
	count := BulletCounts[length]

	if d := s.limiter.Backoff(); d > 0 {
		logger.Info("llm summarizer: rate limited, waiting %s", d.Round(time.Second))
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, &domain.SummarizationError{Err: fmt.Errorf("rate limit wait: %w", err)}
	}

	prompt := fmt.Sprintf(s.loadPrompt(), count, text)
	logger.Debug("llm: summarizing %d characters with %s (%d bullets)", len(text), s.llm.ModelName(), count)

	out, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		System:      systemInstruction,
		MaxTokens:   count * tokensPerBullet,
		Temperature: 0.3,
	})
	if err != nil {
		var se *domain.SummarizationError
		if errors.As(err, &se) {
			if se.StatusCode == http.StatusTooManyRequests {
				s.limiter.RecordRateLimitError(se.RetryAfter)
			}
			return nil, se
		}
		return nil, &domain.SummarizationError{Err: err}
	}

	return &domain.SummaryResult{
		Bullets: parseBullets(out),
		Length:  length,
	}, nil
}

// Ping validates the underlying model service.
func (s *Summarizer) Ping(ctx context.Context) error {
	return s.llm.Ping(ctx)
}

// Close releases the underlying model service.
func (s *Summarizer) Close() error {
	return s.llm.Close()
}

func (s *Summarizer) loadPrompt() string {
	if s.promptStore == nil {
		return DefaultBulletPrompt
	}
	prompt, err := s.promptStore.Load(driven.PromptSummariseBullets)
	if err != nil {
		logger.Warn("load prompt %s: %v", driven.PromptSummariseBullets, err)
		return DefaultBulletPrompt
	}
	return prompt
}

// bulletMarkers are list markers a model may put before a point. A line
// holding only a marker is dropped.
var bulletMarkers = []string{"-", "*", "•"}

// parseBullets applies domain.ParseBullets and strips list markers models
// tend to add.
func parseBullets(out string) []string {
	bullets := domain.ParseBullets(out)
	cleaned := bullets[:0]
	for _, b := range bullets {
		for _, marker := range bulletMarkers {
			if b == marker {
				b = ""
				break
			}
			if strings.HasPrefix(b, marker+" ") {
				b = strings.TrimSpace(strings.TrimPrefix(b, marker+" "))
				break
			}
		}
		if b != "" {
			cleaned = append(cleaned, b)
		}
	}
	return cleaned
}

