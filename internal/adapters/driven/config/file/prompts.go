package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/docdigest/internal/core/ports/driven"
	"github.com/custodia-labs/docdigest/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads summarizer prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// Files are only created on first Load, never in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]cachedPrompt
	initOnce  sync.Once
	initErr   error
}

type cachedPrompt struct {
	text    string
	modTime time.Time
}

// defaultPrompts are written out on first use and served when a file is
// missing or unreadable.
var defaultPrompts = map[string]string{
	driven.PromptSummariseBullets: `Summarise the following document as exactly %d bullet points.
Write one bullet per line. Do not add a heading or closing remarks.

Document:
%s`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to the prompts directory under DefaultDir.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("get config directory: %w", err)
		}
		promptDir = filepath.Join(dir, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]cachedPrompt),
	}, nil
}

// Load returns the prompt template for the given name. The first call
// writes the default files. A cached template is reused until its file's
// modification time changes, so edits apply to the next summary. Missing or
// invalid files fall back to the built-in default.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	path := filepath.Join(s.promptDir, name+".txt")
	info, statErr := os.Stat(path)

	if statErr == nil {
		s.mu.RLock()
		cached, ok := s.cache[name]
		s.mu.RUnlock()
		if ok && cached.modTime.Equal(info.ModTime()) {
			return cached.text, nil
		}
	}

	var prompt string
	err := statErr
	if err == nil {
		prompt, err = s.loadFromFile(path, name)
	}
	if err != nil {
		if def, ok := defaultPrompts[name]; ok {
			if !errors.Is(err, os.ErrNotExist) {
				logger.Warn("using default %s prompt: %v", name, err)
			}
			return def, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	s.mu.Lock()
	s.cache[name] = cachedPrompt{text: prompt, modTime: info.ModTime()}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]cachedPrompt)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk. An edited template that lost the
// placeholders its default carries is rejected.
func (s *PromptStore) loadFromFile(path, name string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	prompt := strings.TrimSpace(string(data))
	if def, ok := defaultPrompts[name]; ok {
		if err := checkPlaceholders(def, prompt); err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
	}
	return prompt, nil
}

// checkPlaceholders requires prompt to use the same verbs, in the same
// order, as def.
func checkPlaceholders(def, prompt string) error {
	want, got := formatVerbs(def), formatVerbs(prompt)
	if strings.Join(want, "") != strings.Join(got, "") {
		return fmt.Errorf("placeholders %v, want %v", got, want)
	}
	return nil
}

// formatVerbs lists the %d and %s verbs in order, skipping %%.
func formatVerbs(s string) []string {
	var verbs []string
	for i := 0; i < len(s)-1; i++ {
		if s[i] != '%' {
			continue
		}
		switch s[i+1] {
		case '%':
			i++
		case 'd', 's':
			verbs = append(verbs, s[i:i+2])
			i++
		}
	}
	return verbs
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# docdigest prompts

These templates drive the LLM-backed summarizers (openai, anthropic, ollama).
The cohere provider does not use them.

## Files

- ` + "`summarise_bullets.txt`" + ` - Asks the model for a bulleted summary

## Placeholders

Templates are Go format strings:
- ` + "`%d`" + ` - number of bullets (short 3, medium 5, long 8)
- ` + "`%s`" + ` - the extracted document text

Keep both placeholders, in that order. Edits apply to the next summary.
`
	return os.WriteFile(path, []byte(content), 0600)
}
