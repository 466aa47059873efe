//go:build nohotkey || !(darwin || windows || (linux && x11hotkey))

package oshotkey

import (
	"fmt"
	"runtime"

	"github.com/kino-6/q-deck-launcher-sub002/internal/hotkey"
)

// New reports that this build carries no system hotkey backend.
func New() (hotkey.Backend, error) {
	return nil, fmt.Errorf("%w on %s (build with -tags x11hotkey on Linux)", ErrUnavailable, runtime.GOOS)
}
