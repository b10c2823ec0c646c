package domain

import (
	"strings"
	"time"
)

// ClipboardBullet prefixes each line when a summary is copied.
const ClipboardBullet = "• "

// SummaryResult is an ordered list of bullet points produced for a document.
type SummaryResult struct {
	// Bullets are in the order the service returned them.
	Bullets []string

	// Length is the preference used to produce this result.
	Length LengthPreference

	// DocumentID identifies the source document.
	DocumentID string

	// DocumentName is the source document's display name.
	DocumentName string

	// GeneratedAt is when the result was produced.
	GeneratedAt time.Time
}

// IsEmpty reports whether the result holds no bullets.
func (r *SummaryResult) IsEmpty() bool {
	return r == nil || len(r.Bullets) == 0
}

// ClipboardText renders the bullets one per line with a bullet glyph.
func (r *SummaryResult) ClipboardText() string {
	if r.IsEmpty() {
		return ""
	}
	lines := make([]string, len(r.Bullets))
	for i, b := range r.Bullets {
		lines[i] = ClipboardBullet + b
	}
	return strings.Join(lines, "\n")
}

// ParseBullets splits newline-delimited summary text into bullets.
// Blank lines are dropped and each remaining line is trimmed.
func ParseBullets(summary string) []string {
	lines := strings.Split(summary, "\n")
	bullets := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		bullets = append(bullets, line)
	}
	return bullets
}
