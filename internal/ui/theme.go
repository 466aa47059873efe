package ui

// Palette holds the base colors of a theme.
type Palette struct {
	Primary    string // Main brand color
	Secondary  string // Secondary accent color
	Background string
	Foreground string
	Comment    string // Muted text, borders
	Success    string
	Warning    string
	Error      string
	Info       string
	Accent     string // Selected cell, cursor
}

const defaultTheme = "dark"

var themes = map[string]Palette{
	"dark": {
		Primary:    "#ff2e63",
		Secondary:  "#ff8c00",
		Background: "#0d0221",
		Foreground: "#f0f0f0",
		Comment:    "#5c527f",
		Success:    "#00f5d4",
		Warning:    "#f9f871",
		Error:      "#ff2e63",
		Info:       "#00f5d4",
		Accent:     "#9d4edd",
	},
	"light": {
		Primary:    "#005f87",
		Secondary:  "#875f00",
		Background: "#fafafa",
		Foreground: "#1c1c1c",
		Comment:    "#8a8a8a",
		Success:    "#00875f",
		Warning:    "#af8700",
		Error:      "#d70000",
		Info:       "#0087af",
		Accent:     "#5f00af",
	},
	"jade": {
		Primary:    "#50fa7b",
		Secondary:  "#8be9fd",
		Background: "#282a36",
		Foreground: "#f8f8f2",
		Comment:    "#6272a4",
		Success:    "#50fa7b",
		Warning:    "#f1fa8c",
		Error:      "#ff5555",
		Info:       "#8be9fd",
		Accent:     "#50fa7b",
	},
	"nord": {
		Primary:    "#0077be",
		Secondary:  "#5e81ac",
		Background: "#0a192f",
		Foreground: "#e5e9f0",
		Comment:    "#4c566a",
		Success:    "#a3be8c",
		Warning:    "#ebcb8b",
		Error:      "#bf616a",
		Info:       "#88c0d0",
		Accent:     "#0077be",
	},
	"everforest": {
		Primary:    "#4a7c59",
		Secondary:  "#a7c080",
		Background: "#2d353b",
		Foreground: "#d3c6aa",
		Comment:    "#5c6a72",
		Success:    "#a7c080",
		Warning:    "#dbbc7f",
		Error:      "#e67e80",
		Info:       "#83c092",
		Accent:     "#4a7c59",
	},
}

// Colors maps a palette onto the overlay's components.
type Colors struct {
	Title     string
	TabActive string
	TabIdle   string
	PageLine  string

	CellBorder    string
	CellSelBorder string
	CellSelText   string
	CellEmpty     string

	StatusInfo     string
	StatusPositive string
	StatusNegative string

	HelpFG string

	PopupBorder string
	PopupFG     string
	PopupBG     string
}

func colorsFor(p Palette) Colors {
	return Colors{
		Title:     p.Primary,
		TabActive: p.Accent,
		TabIdle:   p.Comment,
		PageLine:  p.Secondary,

		CellBorder:    p.Comment,
		CellSelBorder: p.Accent,
		CellSelText:   p.Accent,
		CellEmpty:     p.Comment,

		StatusInfo:     p.Info,
		StatusPositive: p.Success,
		StatusNegative: p.Error,

		HelpFG: p.Comment,

		PopupBorder: p.Primary,
		PopupFG:     p.Foreground,
		PopupBG:     p.Background,
	}
}

// themeByName returns the named palette, falling back to the dark theme.
func themeByName(name string) Palette {
	if p, ok := themes[name]; ok {
		return p
	}
	return themes[defaultTheme]
}
