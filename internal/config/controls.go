package config

// InputConfig defines the in-overlay keybindings. Values are bubbletea key strings.
type InputConfig struct {
	// Toggles for standard navigation sets
	DisableWasd bool `yaml:"disable_wasd_bindings,omitempty"`
	DisableVim  bool `yaml:"disable_vim_bindings,omitempty"`

	Select      string `yaml:"select,omitempty"`
	Hide        string `yaml:"hide,omitempty"`
	NextPage    string `yaml:"next_page,omitempty"`
	PrevPage    string `yaml:"prev_page,omitempty"`
	ProfileNext string `yaml:"profile_next,omitempty"`
	ProfilePrev string `yaml:"profile_prev,omitempty"`
	Undo        string `yaml:"undo,omitempty"`
	Quit        string `yaml:"quit,omitempty"`

	// Internal computed sets for fast lookup
	NavUp    []string `yaml:"-"`
	NavDown  []string `yaml:"-"`
	NavLeft  []string `yaml:"-"`
	NavRight []string `yaml:"-"`
}

// InitControls prepares the input config by populating the internal navigation sets
// based on the disable flags. It should be called after loading the config.
func (c *InputConfig) InitControls() {
	c.NavUp = []string{"up"}
	c.NavDown = []string{"down"}
	c.NavLeft = []string{"left"}
	c.NavRight = []string{"right"}

	if !c.DisableWasd {
		c.NavUp = append(c.NavUp, "w")
		c.NavDown = append(c.NavDown, "s")
		c.NavLeft = append(c.NavLeft, "a")
		c.NavRight = append(c.NavRight, "d")
	}

	if !c.DisableVim {
		c.NavUp = append(c.NavUp, "k")
		c.NavDown = append(c.NavDown, "j")
		c.NavLeft = append(c.NavLeft, "h")
		c.NavRight = append(c.NavRight, "l")
	}
}

func (c *InputConfig) applyDefaults() {
	def := DefaultConfig().UI.Keys
	if c.Select == "" {
		c.Select = def.Select
	}
	if c.Hide == "" {
		c.Hide = def.Hide
	}
	if c.NextPage == "" {
		c.NextPage = def.NextPage
	}
	if c.PrevPage == "" {
		c.PrevPage = def.PrevPage
	}
	if c.ProfileNext == "" {
		c.ProfileNext = def.ProfileNext
	}
	if c.ProfilePrev == "" {
		c.ProfilePrev = def.ProfilePrev
	}
	if c.Undo == "" {
		c.Undo = def.Undo
	}
	if c.Quit == "" {
		c.Quit = def.Quit
	}
	c.InitControls()
}
