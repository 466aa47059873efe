//go:build nohotkey || !(darwin || windows || (linux && x11hotkey))

package oshotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutSystemBackend(t *testing.T) {
	b, err := New()
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Nil(t, b)
}
