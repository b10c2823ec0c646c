// Package extractors provides implementations of the Extractor interface
// for the accepted document formats. Each extractor knows how to produce
// plain text from a specific media type.
//
// Extractors are registered with the Registry at startup.
package extractors
