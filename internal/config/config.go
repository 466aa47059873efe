package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	ConfigFilename     = "config.yaml"
	NavigationFilename = "navigation.toml"
	LogFilename        = "qdeck.log"

	// ConfigDirEnv overrides the config directory when set.
	ConfigDirEnv = "QDECK_CONFIG_DIR"
)

const (
	DefaultAnimationMs = 150
	DefaultGraceMs     = 150
	MaxAnimationMs     = 2000
	MaxGraceMs         = 1000
)

// DefaultExecutablePatterns are matched against a dropped file's base name.
var DefaultExecutablePatterns = []string{
	"*.exe", "*.msi", "*.bat", "*.cmd", "*.com", "*.scr",
	"*.ps1", "*.py", "*.js", "*.sh", "*.vbs",
}

func defaultShell() string {
	if runtime.GOOS == "windows" {
		return "pwsh"
	}
	return "bash"
}

// DefaultPage is the page created for a fresh profile.
func DefaultPage() Page {
	return Page{Name: "Main", Rows: 3, Cols: 6, Buttons: []Button{}}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Version: "1.0",
		UI: UIConfig{
			Summon: SummonConfig{Hotkeys: []string{"F11"}},
			Window: WindowConfig{
				Placement:  "dropdown-top",
				WidthPx:    1000,
				HeightPx:   600,
				CellSizePx: 96,
				GapPx:      8,
				Opacity:    0.92,
				Theme:      "dark",
				Animation:  AnimationConfig{DurationMs: DefaultAnimationMs},
				AutoHide:   AutoHideConfig{GraceMs: DefaultGraceMs},
			},
			Drop: DropConfig{ExecutablePatterns: append([]string(nil), DefaultExecutablePatterns...)},
			Keys: InputConfig{
				Select:      "enter",
				Hide:        "esc",
				NextPage:    "pgdown",
				PrevPage:    "pgup",
				ProfileNext: "p",
				ProfilePrev: "o",
				Undo:        "ctrl+z",
				Quit:        "ctrl+c",
			},
			Shell: defaultShell(),
		},
		Profiles: []Profile{
			{Name: "Default", Pages: []Page{DefaultPage()}},
		},
	}
}

// ApplyDefaults fills zero values with the defaults. It never touches profiles that exist.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	if strings.TrimSpace(c.Version) == "" {
		c.Version = def.Version
	}
	if len(c.UI.Summon.Hotkeys) == 0 {
		c.UI.Summon.Hotkeys = def.UI.Summon.Hotkeys
	}
	w := &c.UI.Window
	if w.Placement == "" {
		w.Placement = def.UI.Window.Placement
	}
	if w.WidthPx == 0 {
		w.WidthPx = def.UI.Window.WidthPx
	}
	if w.HeightPx == 0 {
		w.HeightPx = def.UI.Window.HeightPx
	}
	if w.CellSizePx == 0 {
		w.CellSizePx = def.UI.Window.CellSizePx
	}
	if w.GapPx == 0 {
		w.GapPx = def.UI.Window.GapPx
	}
	if w.Opacity == 0 {
		w.Opacity = def.UI.Window.Opacity
	}
	if w.Theme == "" {
		w.Theme = def.UI.Window.Theme
	}
	if w.Animation.DurationMs == 0 {
		w.Animation.DurationMs = DefaultAnimationMs
	}
	if w.AutoHide.GraceMs == 0 {
		w.AutoHide.GraceMs = DefaultGraceMs
	}
	if len(c.UI.Drop.ExecutablePatterns) == 0 {
		c.UI.Drop.ExecutablePatterns = def.UI.Drop.ExecutablePatterns
	}
	if c.UI.Shell == "" {
		c.UI.Shell = def.UI.Shell
	}
	c.UI.Keys.applyDefaults()
	if len(c.Profiles) == 0 {
		c.Profiles = def.Profiles
	}
	for i := range c.Profiles {
		if len(c.Profiles[i].Pages) == 0 {
			c.Profiles[i].Pages = []Page{DefaultPage()}
		}
		for j := range c.Profiles[i].Pages {
			if c.Profiles[i].Pages[j].Buttons == nil {
				c.Profiles[i].Pages[j].Buttons = []Button{}
			}
		}
	}
}

// ClampConfig pulls numeric UI settings back into range.
func ClampConfig(cfg *Config) {
	a := &cfg.UI.Window.Animation
	if a.DurationMs < 0 {
		a.DurationMs = 0
	}
	if a.DurationMs > MaxAnimationMs {
		a.DurationMs = MaxAnimationMs
	}
	h := &cfg.UI.Window.AutoHide
	if h.GraceMs < 0 {
		h.GraceMs = 0
	}
	if h.GraceMs > MaxGraceMs {
		h.GraceMs = MaxGraceMs
	}
	if cfg.UI.Window.Opacity < 0 {
		cfg.UI.Window.Opacity = 0
	}
	if cfg.UI.Window.Opacity > 1 {
		cfg.UI.Window.Opacity = 1
	}
}

// BuildGrid lays the page's button labels out as a rows x cols matrix (0-based).
// Cells without a button are empty strings; out-of-bounds buttons are skipped.
func BuildGrid(page Page) [][]string {
	rows, cols := page.Rows, page.Cols
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	grid := make([][]string, rows)
	for i := range grid {
		grid[i] = make([]string, cols)
	}
	for _, b := range page.Buttons {
		r, c := b.Position.Row-1, b.Position.Col-1
		if r >= 0 && r < rows && c >= 0 && c < cols {
			grid[r][c] = b.Label
		}
	}
	return grid
}

// GetConfigDir resolves the directory holding config.yaml, navigation.toml and the log.
func GetConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(ConfigDirEnv)); dir != "" {
		return dir, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", errors.Join(err, herr)
		}
		configDir = filepath.Join(home, ".qdeck")

	} else {
		configDir = filepath.Join(configDir, "qdeck")
	}
	return configDir, nil
}

func FileExists(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
