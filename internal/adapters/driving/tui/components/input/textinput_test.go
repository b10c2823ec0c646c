package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPathInput(t *testing.T) {
	in := NewPathInput(nil, "")

	require.NotNil(t, in)
	assert.False(t, in.Focused())
	assert.Equal(t, 50, in.Width())
}

func TestPathInput_Path(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "   ", ""},
		{"plain", "/docs/report.pdf", "/docs/report.pdf"},
		{"quoted", `'/docs/my report.pdf'`, "/docs/my report.pdf"},
		{"double quoted", `"/docs/scan.png" `, "/docs/scan.png"},
		{"home", "~/scan.jpg", "/home/ada/scan.jpg"},
		{"unclean", "/docs/../docs/./a.pdf", "/docs/a.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewPathInput(nil, "/home/ada")
			in.SetValue(tt.value)
			assert.Equal(t, tt.want, in.Path())
		})
	}
}

func TestPathInput_TypingWhenFocused(t *testing.T) {
	in := NewPathInput(nil, "")
	in.Focus()

	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a.pdf")})

	assert.Equal(t, "a.pdf", in.Value())

	in.Reset()
	assert.Empty(t, in.Value())
}

func TestPathInput_SetWidth(t *testing.T) {
	in := NewPathInput(nil, "")

	in.SetWidth(10)

	assert.Equal(t, 10, in.Width())
	assert.Contains(t, in.View(), "File:")
}
