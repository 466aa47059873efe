package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
)

// Fixed bindings that are not configurable.
const (
	keyHelp    = "?"
	keyDetails = "i"
	keyCopy    = "y"
	keyJump    = "tab"
	keyJumpRev = "shift+tab"

	profileSwitchModifier = "alt"
)

// keyMap is built from the configured InputConfig and feeds the help view.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Jump        key.Binding
	JumpBack    key.Binding
	Select      key.Binding
	Hide        key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	ProfileNext key.Binding
	ProfilePrev key.Binding
	Undo        key.Binding
	Details     key.Binding
	Copy        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap(c config.InputConfig) keyMap {
	if len(c.NavUp) == 0 {
		c.InitControls()
	}
	return keyMap{
		Up:          binding(c.NavUp, "up"),
		Down:        binding(c.NavDown, "down"),
		Left:        binding(c.NavLeft, "left"),
		Right:       binding(c.NavRight, "right"),
		Jump:        binding([]string{keyJump}, "next button"),
		JumpBack:    binding([]string{keyJumpRev}, "previous button"),
		Select:      binding([]string{c.Select}, "run"),
		Hide:        binding([]string{c.Hide}, "hide"),
		NextPage:    binding([]string{c.NextPage}, "next page"),
		PrevPage:    binding([]string{c.PrevPage}, "prev page"),
		ProfileNext: binding([]string{c.ProfileNext}, "next profile"),
		ProfilePrev: binding([]string{c.ProfilePrev}, "prev profile"),
		Undo:        binding([]string{c.Undo}, "undo drop"),
		Details:     binding([]string{keyDetails}, "details"),
		Copy:        binding([]string{keyCopy}, "copy target"),
		Help:        binding([]string{keyHelp}, "help"),
		Quit:        binding([]string{c.Quit}, "quit"),
	}
}

func binding(keys []string, desc string) key.Binding {
	var clean []string
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			clean = append(clean, k)
		}
	}
	if len(clean) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(clean...),
		key.WithHelp(strings.Join(clean, "/"), desc),
	)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Hide, k.PrevPage, k.NextPage, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Jump, k.JumpBack},
		{k.Select, k.Details, k.Copy, k.Undo},
		{k.PrevPage, k.NextPage, k.ProfilePrev, k.ProfileNext},
		{k.Hide, k.Help, k.Quit},
	}
}

// IsProfileSwitch checks if the key is a profile switch command (Modifier + 1-9).
// Returns true and the 0-based index if matched.
func IsProfileSwitch(msg tea.KeyMsg, modifier string) (bool, int) {
	s := msg.String()
	prefix := modifier + "+"
	if strings.HasPrefix(s, prefix) && len(s) == len(prefix)+1 {
		n := s[len(s)-1]
		if n >= '1' && n <= '9' {
			return true, int(n - '1')
		}
	}
	return false, -1
}
