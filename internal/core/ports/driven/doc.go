// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TextExtractor: Produces plain text from a Document
//   - Extractor: A single media-type strategy behind the TextExtractor
//   - PageDocumentEngine: Opens paginated documents and yields page text
//   - OCREngineFactory: Creates scoped image recognition engines
//   - Summarizer: Turns extracted text into bullet points
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DocumentLoader: Reads documents from disk. Without it only in-memory selection works.
//   - DocumentWatcher: Notifies on file changes. Without it --watch is unavailable.
//   - Clipboard: System clipboard access. Without it copy is unavailable.
//   - LLMService: Backs the LLM summarizer providers.
//   - PromptStore: User-editable prompts for LLM summarizers.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
