//go:build darwin && !nohotkey

package oshotkey

import (
	xhotkey "golang.design/x/hotkey"

	"github.com/kino-6/q-deck-launcher-sub002/internal/hotkey"
)

var osModifier = map[hotkey.Modifier]xhotkey.Modifier{
	hotkey.ModCtrl:  xhotkey.ModCtrl,
	hotkey.ModAlt:   xhotkey.ModOption,
	hotkey.ModShift: xhotkey.ModShift,
	hotkey.ModSuper: xhotkey.ModCmd,
}
