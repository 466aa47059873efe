//go:build linux && x11hotkey && !nohotkey

package oshotkey

import (
	xhotkey "golang.design/x/hotkey"

	"github.com/kino-6/q-deck-launcher-sub002/internal/hotkey"
)

// X11 maps Alt to Mod1 and Super to Mod4 on nearly every keyboard layout.
var osModifier = map[hotkey.Modifier]xhotkey.Modifier{
	hotkey.ModCtrl:  xhotkey.ModCtrl,
	hotkey.ModAlt:   xhotkey.Mod1,
	hotkey.ModShift: xhotkey.ModShift,
	hotkey.ModSuper: xhotkey.Mod4,
}
