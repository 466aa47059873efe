package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNormalizes(t *testing.T) {
	tests := []struct {
		in      string
		norm    string
		display string
	}{
		{"Ctrl+Alt+Q", "ctrl+alt+q", "Ctrl+Alt+Q"},
		{"alt+ctrl+q", "ctrl+alt+q", "Ctrl+Alt+Q"},
		{" Shift + CTRL + f1 ", "ctrl+shift+f1", "Ctrl+Shift+F1"},
		{"Win+Space", "super+space", "Super+Space"},
		{"cmd+shift+return", "shift+super+enter", "Shift+Super+Enter"},
		{"F11", "f11", "F11"},
		{"control+option+esc", "ctrl+alt+escape", "Ctrl+Alt+Escape"},
		{"Ctrl+1", "ctrl+1", "Ctrl+1"},
		{"Ctrl+F01", "ctrl+f1", "Ctrl+F1"},
		{"f020", "f20", "F20"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.norm, c.String())
			assert.Equal(t, tt.display, c.Display())
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{"", "  ", "Ctrl+", "Ctrl+Alt", "Ctrl+Q+W", "Ctrl+Ctrl+Q", "Hyper+Q", "F21", "F0", "F00001", "Ctrl+??"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			assert.ErrorIs(t, err, ErrInvalidCombination)
		})
	}
}

func TestNormalizeEquivalentSpellings(t *testing.T) {
	a, err := Normalize("Ctrl+Alt+Q")
	require.NoError(t, err)
	b, err := Normalize("Alt+Ctrl+Q")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
