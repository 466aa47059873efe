package config

import "fmt"

// ActionType selects which executor runs when a button is pressed.
type ActionType string

const (
	ActionLaunchApp ActionType = "LaunchApp"
	ActionOpen      ActionType = "Open"
	ActionTerminal  ActionType = "Terminal"
	ActionSystem    ActionType = "System"
)

// Valid reports whether t is one of the known action types.
func (t ActionType) Valid() bool {
	switch t {
	case ActionLaunchApp, ActionOpen, ActionTerminal, ActionSystem:
		return true
	}
	return false
}

// Position is a 1-based grid cell.
type Position struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// ButtonStyle holds optional per-button colors.
type ButtonStyle struct {
	BackgroundColor string `yaml:"background_color,omitempty"`
	TextColor       string `yaml:"text_color,omitempty"`
}

// Button is one persisted grid cell.
type Button struct {
	Position   Position       `yaml:"position"`
	ActionType ActionType     `yaml:"action_type"`
	Label      string         `yaml:"label"`
	Icon       string         `yaml:"icon,omitempty"`
	Config     map[string]any `yaml:"config,omitempty"`
	Style      *ButtonStyle   `yaml:"style,omitempty"`
}

// ConfigString returns the string value stored under key in the action config.
func (b Button) ConfigString(key string) string {
	if b.Config == nil {
		return ""
	}
	v, ok := b.Config[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// ConfigStrings returns a string list stored under key; scalar values become a one element list.
func (b Button) ConfigStrings(key string) []string {
	if b.Config == nil {
		return nil
	}
	switch v := b.Config[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}

type Page struct {
	Name    string   `yaml:"name"`
	Rows    int      `yaml:"rows"`
	Cols    int      `yaml:"cols"`
	Buttons []Button `yaml:"buttons"`
}

// InBounds reports whether pos lies inside the page's grid.
func (p Page) InBounds(pos Position) bool {
	return pos.Row >= 1 && pos.Row <= p.Rows && pos.Col >= 1 && pos.Col <= p.Cols
}

// ButtonIndex returns the index of the button at pos, or -1.
func (p Page) ButtonIndex(pos Position) int {
	for i, b := range p.Buttons {
		if b.Position == pos {
			return i
		}
	}
	return -1
}

// ButtonAt returns the button occupying pos.
func (p Page) ButtonAt(pos Position) (Button, bool) {
	if i := p.ButtonIndex(pos); i >= 0 {
		return p.Buttons[i], true
	}
	return Button{}, false
}

type Profile struct {
	Name   string `yaml:"name"`
	Hotkey string `yaml:"hotkey,omitempty"`
	Pages  []Page `yaml:"pages"`
}

type SummonConfig struct {
	Hotkeys []string `yaml:"hotkeys"`
}

type AnimationConfig struct {
	Enabled    *bool `yaml:"enabled,omitempty"`
	DurationMs int   `yaml:"duration_ms"`
}

type AutoHideConfig struct {
	Enabled *bool `yaml:"enabled,omitempty"`
	GraceMs int   `yaml:"grace_ms"`
}

type WindowConfig struct {
	Placement     string          `yaml:"placement"`
	WidthPx       int             `yaml:"width_px"`
	HeightPx      int             `yaml:"height_px"`
	CellSizePx    int             `yaml:"cell_size_px"`
	GapPx         int             `yaml:"gap_px"`
	Opacity       float64         `yaml:"opacity"`
	Theme         string          `yaml:"theme"`
	Animation     AnimationConfig `yaml:"animation"`
	AutoHide      AutoHideConfig  `yaml:"auto_hide"`
	BoundaryWatch bool            `yaml:"boundary_watch,omitempty"`
}

type DropConfig struct {
	ExecutablePatterns []string `yaml:"executable_patterns"`
}

type UIConfig struct {
	Summon       SummonConfig `yaml:"summon"`
	Window       WindowConfig `yaml:"window"`
	Drop         DropConfig   `yaml:"drop"`
	Keys         InputConfig  `yaml:"keys"`
	Shell        string       `yaml:"shell,omitempty"`
	EnvWhitelist []string     `yaml:"env_whitelist,omitempty"`
	Notify       *bool        `yaml:"notify,omitempty"`
}

// Config is the whole on-disk document.
type Config struct {
	Version  string    `yaml:"version"`
	UI       UIConfig  `yaml:"ui"`
	Profiles []Profile `yaml:"profiles"`
}

// AnimationEnabled resolves the optional animation toggle (default on).
func (c Config) AnimationEnabled() bool {
	return boolOrDefault(c.UI.Window.Animation.Enabled, true)
}

// AutoHideEnabled resolves the optional auto-hide toggle (default on).
func (c Config) AutoHideEnabled() bool {
	return boolOrDefault(c.UI.Window.AutoHide.Enabled, true)
}

// NotifyEnabled resolves the optional desktop notification toggle (default on).
func (c Config) NotifyEnabled() bool {
	return boolOrDefault(c.UI.Notify, true)
}

func boolOrDefault(ptr *bool, def bool) bool {
	if ptr == nil {
		return def
	}
	return *ptr
}

// Clone returns a deep copy of the profile tree. Action config maps are copied one level deep.
func (c Config) Clone() Config {
	out := c
	out.UI.Summon.Hotkeys = append([]string(nil), c.UI.Summon.Hotkeys...)
	out.UI.Drop.ExecutablePatterns = append([]string(nil), c.UI.Drop.ExecutablePatterns...)
	out.UI.EnvWhitelist = append([]string(nil), c.UI.EnvWhitelist...)
	out.Profiles = make([]Profile, len(c.Profiles))
	for i, p := range c.Profiles {
		out.Profiles[i] = p.Clone()
	}
	return out
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	out := p
	out.Pages = make([]Page, len(p.Pages))
	for i, pg := range p.Pages {
		out.Pages[i] = pg.Clone()
	}
	return out
}

// Clone returns a deep copy of the page.
func (p Page) Clone() Page {
	out := p
	if p.Buttons != nil {
		out.Buttons = make([]Button, len(p.Buttons))
		for i, b := range p.Buttons {
			out.Buttons[i] = b.Clone()
		}
	}
	return out
}

// Clone returns a copy of the button with its own config map.
func (b Button) Clone() Button {
	out := b
	if b.Config != nil {
		out.Config = make(map[string]any, len(b.Config))
		for k, v := range b.Config {
			out.Config[k] = v
		}
	}
	if b.Style != nil {
		s := *b.Style
		out.Style = &s
	}
	return out
}
