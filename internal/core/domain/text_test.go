package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", true},
		{"single space", " ", true},
		{"whitespace only", "\n\t  \n", true},
		{"49 characters", strings.Repeat("a", 49), true},
		{"exactly 50", strings.Repeat("a", 50), false},
		{"50 after trimming", "   " + strings.Repeat("b", 50) + "\n\n", false},
		{"49 after trimming", "  " + strings.Repeat("c", 49) + "  ", true},
		{"multibyte runes", strings.Repeat("é", 50), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateText(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInsufficientText))
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.input), got)
		})
	}
}

func TestValidateText_ReportsLength(t *testing.T) {
	_, err := ValidateText("  short  ")

	var ite *InsufficientTextError
	require.True(t, errors.As(err, &ite))
	assert.Equal(t, 5, ite.Length)
	assert.Equal(t, MinTextLength, ite.Minimum)
}
