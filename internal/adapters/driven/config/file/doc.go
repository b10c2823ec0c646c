// Package file provides file-based implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: TOML configuration in ~/.docdigest/config.toml
//   - PromptStore: editable LLM prompt templates in ~/.docdigest/prompts
package file
