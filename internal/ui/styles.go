package ui

import (
	"log"

	"github.com/charmbracelet/lipgloss"
	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
)

// Styling lives in one place so colors and layout tweaks are easy to reason about.

const (
	// cellTextWidth is the printable width inside a cell, cellLines its text rows.
	cellTextWidth = 12
	cellLines     = 2

	// Rendered cell size in terminal cells, border and padding included.
	cellBoxWidth  = cellTextWidth + 4
	cellBoxHeight = cellLines + 2

	marginTop  = 1
	marginLeft = 2
)

var (
	appStyle = lipgloss.NewStyle().
			Margin(marginTop, marginLeft)

	titleStyle          lipgloss.Style
	tabStyle            lipgloss.Style
	activeTabStyle      lipgloss.Style
	pageLineStyle       lipgloss.Style
	headerStyle         lipgloss.Style
	cellStyle           lipgloss.Style
	selectedCellStyle   lipgloss.Style
	emptyCellStyle      lipgloss.Style
	statusInfoStyle     lipgloss.Style
	statusPositiveStyle lipgloss.Style
	statusNegativeStyle lipgloss.Style
	helpStyle           lipgloss.Style
	popupStyle          lipgloss.Style
	popupLabelStyle     lipgloss.Style
	popupValueStyle     lipgloss.Style
	hiddenHintStyle     lipgloss.Style
)

func init() {
	applyThemeStyles(config.DefaultConfig())
}

func applyThemeStyles(cfg config.Config) {
	name := cfg.UI.Window.Theme
	if _, ok := themes[name]; !ok && name != "" {
		log.Printf("Unknown theme %q, using %s", name, defaultTheme)
	}
	c := colorsFor(themeByName(name))

	titleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Title)).
		Bold(true).
		PaddingRight(1)

	tabStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.TabIdle)).
		Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.TabActive)).
		Underline(true).
		Bold(true).
		Padding(0, 1)

	pageLineStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.PageLine))

	headerStyle = lipgloss.NewStyle().
		MarginBottom(1)

	retroBorder := lipgloss.Border{
		Top:         "━",
		Bottom:      "━",
		Left:        " ",
		Right:       " ",
		TopLeft:     "┍",
		TopRight:    "┑",
		BottomLeft:  "┕",
		BottomRight: "┙",
	}

	cellStyle = lipgloss.NewStyle().
		Border(retroBorder).
		BorderForeground(lipgloss.Color(c.CellBorder)).
		Width(cellTextWidth+2).
		Height(cellLines).
		Align(lipgloss.Center).
		Bold(true).
		Padding(0, 1)

	selectedCellStyle = cellStyle.
		BorderForeground(lipgloss.Color(c.CellSelBorder)).
		Foreground(lipgloss.Color(c.CellSelText))

	emptyCellStyle = cellStyle.
		Bold(false).
		Foreground(lipgloss.Color(c.CellEmpty))

	statusInfoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.StatusInfo)).
		PaddingTop(1)

	statusPositiveStyle = statusInfoStyle.
		Foreground(lipgloss.Color(c.StatusPositive))

	statusNegativeStyle = statusInfoStyle.
		Foreground(lipgloss.Color(c.StatusNegative))

	helpStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.HelpFG))

	popupStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color(c.PopupBorder)).
		Background(lipgloss.Color(c.PopupBG)).
		Foreground(lipgloss.Color(c.PopupFG)).
		Padding(1, 2)

	popupLabelStyle = helpStyle.
		Background(lipgloss.Color(c.PopupBG))

	popupValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.PopupFG)).
		Background(lipgloss.Color(c.PopupBG))

	hiddenHintStyle = helpStyle.
		Italic(true)
}
