package driven

import "github.com/custodia-labs/docdigest/internal/core/domain"

// SummarizerValidator validates summarizer configurations.
// Implementations verify connectivity to the underlying service.
type SummarizerValidator interface {
	// ValidateSummarizer pings the configured provider.
	// Returns nil if configuration is valid or not configured.
	ValidateSummarizer(config *domain.SummarizerSettings) error
}
