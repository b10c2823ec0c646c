package domain

import (
	"strings"
	"unicode/utf8"
)

// MinTextLength is the minimum number of characters, after trimming, that
// extracted text must contain before it is sent for summarization.
const MinTextLength = 50

// ValidateText trims surrounding whitespace and checks the result meets
// MinTextLength. It returns the trimmed text.
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	n := utf8.RuneCountInString(trimmed)
	if n < MinTextLength {
		return "", &InsufficientTextError{Length: n, Minimum: MinTextLength}
	}
	return trimmed, nil
}
