//go:build !nohotkey && (darwin || windows || (linux && x11hotkey))

package oshotkey

import (
	"fmt"
	"sync"

	xhotkey "golang.design/x/hotkey"

	"github.com/kino-6/q-deck-launcher-sub002/internal/hotkey"
)

// Backend registers system-wide hotkeys through golang.design/x/hotkey.
// On macOS the process must run its main function through mainthread.Init.
type Backend struct {
	mu   sync.Mutex
	keys map[string]*xhotkey.Hotkey
}

// New returns the system backend.
func New() (hotkey.Backend, error) {
	return &Backend{keys: make(map[string]*xhotkey.Hotkey)}, nil
}

func (b *Backend) Register(c hotkey.Combination, onMatch func(string)) error {
	key, ok := osKeys[c.Key]
	if !ok {
		return fmt.Errorf("key %q is not supported by the system hotkey backend", c.Key)
	}
	hk := xhotkey.New(osModifiers(c.Mods), key)
	if err := hk.Register(); err != nil {
		return err
	}

	name := c.String()
	b.mu.Lock()
	b.keys[name] = hk
	b.mu.Unlock()

	keydown := hk.Keydown()
	go func() {
		// The channel is closed by Unregister.
		for range keydown {
			onMatch(name)
		}
	}()
	return nil
}

func (b *Backend) Unregister(c hotkey.Combination) error {
	name := c.String()
	b.mu.Lock()
	hk, ok := b.keys[name]
	delete(b.keys, name)
	b.mu.Unlock()
	if !ok {
		return nil
	}
	return hk.Unregister()
}

var osKeys = map[string]xhotkey.Key{
	"a": xhotkey.KeyA, "b": xhotkey.KeyB, "c": xhotkey.KeyC, "d": xhotkey.KeyD,
	"e": xhotkey.KeyE, "f": xhotkey.KeyF, "g": xhotkey.KeyG, "h": xhotkey.KeyH,
	"i": xhotkey.KeyI, "j": xhotkey.KeyJ, "k": xhotkey.KeyK, "l": xhotkey.KeyL,
	"m": xhotkey.KeyM, "n": xhotkey.KeyN, "o": xhotkey.KeyO, "p": xhotkey.KeyP,
	"q": xhotkey.KeyQ, "r": xhotkey.KeyR, "s": xhotkey.KeyS, "t": xhotkey.KeyT,
	"u": xhotkey.KeyU, "v": xhotkey.KeyV, "w": xhotkey.KeyW, "x": xhotkey.KeyX,
	"y": xhotkey.KeyY, "z": xhotkey.KeyZ,

	"0": xhotkey.Key0, "1": xhotkey.Key1, "2": xhotkey.Key2, "3": xhotkey.Key3,
	"4": xhotkey.Key4, "5": xhotkey.Key5, "6": xhotkey.Key6, "7": xhotkey.Key7,
	"8": xhotkey.Key8, "9": xhotkey.Key9,

	"f1": xhotkey.KeyF1, "f2": xhotkey.KeyF2, "f3": xhotkey.KeyF3, "f4": xhotkey.KeyF4,
	"f5": xhotkey.KeyF5, "f6": xhotkey.KeyF6, "f7": xhotkey.KeyF7, "f8": xhotkey.KeyF8,
	"f9": xhotkey.KeyF9, "f10": xhotkey.KeyF10, "f11": xhotkey.KeyF11, "f12": xhotkey.KeyF12,
	"f13": xhotkey.KeyF13, "f14": xhotkey.KeyF14, "f15": xhotkey.KeyF15, "f16": xhotkey.KeyF16,
	"f17": xhotkey.KeyF17, "f18": xhotkey.KeyF18, "f19": xhotkey.KeyF19, "f20": xhotkey.KeyF20,

	"space":  xhotkey.KeySpace,
	"enter":  xhotkey.KeyReturn,
	"escape": xhotkey.KeyEscape,
	"delete": xhotkey.KeyDelete,
	"tab":    xhotkey.KeyTab,
	"left":   xhotkey.KeyLeft,
	"right":  xhotkey.KeyRight,
	"up":     xhotkey.KeyUp,
	"down":   xhotkey.KeyDown,
}

func osModifiers(m hotkey.Modifier) []xhotkey.Modifier {
	var out []xhotkey.Modifier
	for _, mod := range []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModAlt, hotkey.ModShift, hotkey.ModSuper} {
		if m&mod != 0 {
			out = append(out, osModifier[mod])
		}
	}
	return out
}
