// Package domain defines the core business entities for docdigest.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A selected file with its declared media type
//   - LengthPreference: The user's chosen summary verbosity
//   - SummaryResult: An ordered list of bullet points
//   - PipelineState: The orchestrator's lifecycle snapshot
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
