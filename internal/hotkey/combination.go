package hotkey

import (
	"fmt"
	"strings"
)

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
	ModSuper
)

// modifierOrder fixes the normalized spelling: ctrl+alt+shift+super+key.
var modifierOrder = []struct {
	mod     Modifier
	name    string
	display string
}{
	{ModCtrl, "ctrl", "Ctrl"},
	{ModAlt, "alt", "Alt"},
	{ModShift, "shift", "Shift"},
	{ModSuper, "super", "Super"},
}

var modifierAliases = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"shift":   ModShift,
	"super":   ModSuper,
	"win":     ModSuper,
	"windows": ModSuper,
	"cmd":     ModSuper,
	"command": ModSuper,
	"meta":    ModSuper,
}

var keyAliases = map[string]string{
	"return": "enter",
	"esc":    "escape",
	"del":    "delete",
	"ins":    "insert",
	"pgup":   "pageup",
	"pgdn":   "pagedown",
	"pgdown": "pagedown",
	"spc":    "space",
}

var namedKeys = map[string]string{
	"space":     "Space",
	"enter":     "Enter",
	"escape":    "Escape",
	"tab":       "Tab",
	"delete":    "Delete",
	"backspace": "Backspace",
	"insert":    "Insert",
	"home":      "Home",
	"end":       "End",
	"pageup":    "PageUp",
	"pagedown":  "PageDown",
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
}

// Combination is a parsed key chord: a modifier set plus exactly one key.
type Combination struct {
	Mods Modifier
	Key  string
}

// Parse reads a chord such as "Ctrl+Alt+Q". Tokens are case-insensitive and may come in any order.
func Parse(s string) (Combination, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Combination{}, fmt.Errorf("%w: empty combination", ErrInvalidCombination)
	}

	var c Combination
	for _, part := range strings.Split(raw, "+") {
		tok := strings.ToLower(strings.TrimSpace(part))
		if tok == "" {
			return Combination{}, fmt.Errorf("%w: empty token in %q", ErrInvalidCombination, s)
		}
		if mod, ok := modifierAliases[tok]; ok {
			if c.Mods&mod != 0 {
				return Combination{}, fmt.Errorf("%w: modifier %q repeated in %q", ErrInvalidCombination, tok, s)
			}
			c.Mods |= mod
			continue
		}
		key, ok := canonicalKey(tok)
		if !ok {
			return Combination{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidCombination, tok, s)
		}
		if c.Key != "" {
			return Combination{}, fmt.Errorf("%w: more than one key in %q", ErrInvalidCombination, s)
		}
		c.Key = key
	}
	if c.Key == "" {
		return Combination{}, fmt.Errorf("%w: no key in %q", ErrInvalidCombination, s)
	}
	return c, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Combination {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize returns the canonical lowercase spelling of s.
func Normalize(s string) (string, error) {
	c, err := Parse(s)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

func canonicalKey(tok string) (string, bool) {
	if alias, ok := keyAliases[tok]; ok {
		tok = alias
	}
	if len(tok) == 1 {
		ch := tok[0]
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') {
			return tok, true
		}
		return "", false
	}
	if _, ok := namedKeys[tok]; ok {
		return tok, true
	}
	if n, ok := functionKeyNumber(tok); ok && n >= 1 && n <= 20 {
		// "f01" and "f1" are the same key.
		return fmt.Sprintf("f%d", n), true
	}
	return "", false
}

func functionKeyNumber(tok string) (int, bool) {
	if len(tok) < 2 || len(tok) > 4 || tok[0] != 'f' {
		return 0, false
	}
	n := 0
	for _, ch := range tok[1:] {
		if ch < '0' || ch > '9' {
			return 0, false
		}
		n = n*10 + int(ch-'0')
	}
	return n, true
}

// String is the normalized form used as the registry key.
func (c Combination) String() string {
	var b strings.Builder
	for _, m := range modifierOrder {
		if c.Mods&m.mod != 0 {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	b.WriteString(c.Key)
	return b.String()
}

// Display is the human form, e.g. "Ctrl+Alt+Q".
func (c Combination) Display() string {
	var parts []string
	for _, m := range modifierOrder {
		if c.Mods&m.mod != 0 {
			parts = append(parts, m.display)
		}
	}
	return strings.Join(append(parts, displayKey(c.Key)), "+")
}

func displayKey(key string) string {
	if d, ok := namedKeys[key]; ok {
		return d
	}
	return strings.ToUpper(key)
}
