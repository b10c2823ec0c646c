// Package clipboard writes summaries to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/docdigest/internal/core/ports/driven"
)

// Ensure System implements the interface.
var _ driven.Clipboard = (*System)(nil)

// ErrCopyFailed is surfaced to users when the clipboard rejects a write.
var ErrCopyFailed = errors.New("failed to copy text")

// ErrUnavailable indicates no clipboard utility is available.
var ErrUnavailable = errors.New("clipboard unavailable")

// System uses the platform clipboard (pbcopy, xclip, xsel, wl-copy or the
// Windows API).
type System struct {
	write       func(string) error
	unsupported func() bool
}

// New creates a clipboard backed by the platform.
func New() *System {
	return &System{
		write:       clipboard.WriteAll,
		unsupported: func() bool { return clipboard.Unsupported },
	}
}

// WriteText replaces the clipboard contents with text.
func (s *System) WriteText(text string) error {
	if s.unsupported() {
		return fmt.Errorf("%w: %w", ErrCopyFailed, ErrUnavailable)
	}
	if err := s.write(text); err != nil {
		return fmt.Errorf("%w: %w", ErrCopyFailed, err)
	}
	return nil
}
