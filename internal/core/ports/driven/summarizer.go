package driven

import (
	"context"

	"github.com/custodia-labs/docdigest/internal/core/domain"
)

// Summarizer turns extracted text into an ordered bullet list.
//
// Implementations may include:
//   - Cohere summarize endpoint
//   - OpenAI, Anthropic or Ollama models prompted for bullets
type Summarizer interface {
	// Summarize makes a single attempt; failures are *domain.SummarizationError.
	// The returned result may hold zero bullets; callers decide what that means.
	Summarize(ctx context.Context, text string, length domain.LengthPreference) (*domain.SummaryResult, error)

	// Ping validates the service is reachable and the credential accepted.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
