package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
	"github.com/kino-6/q-deck-launcher-sub002/internal/dragdrop"
	"github.com/kino-6/q-deck-launcher-sub002/internal/icon"
	"github.com/mattn/go-runewidth"
)

const imageGlyph = "▣"

// cellIcon picks the glyph shown above the label. Images cannot be drawn in a
// terminal cell, so they get a placeholder.
func cellIcon(b config.Button) string {
	switch icon.KindOf(b.Icon) {
	case icon.KindEmoji:
		return strings.TrimSpace(b.Icon)
	case icon.KindNone:
		return ""
	}
	return imageGlyph
}

func cellLabel(label string) string {
	return runewidth.Truncate(label, cellTextWidth, "…")
}

func (m Model) renderCell(r, c int) string {
	pos := config.Position{Row: r + 1, Col: c + 1}
	selected := m.cursor.Row == r && m.cursor.Col == c

	b, ok := m.page.ButtonAt(pos)
	if !ok {
		style := emptyCellStyle
		if selected {
			style = selectedCellStyle.Bold(false)
		}
		return style.Render("·")
	}

	style := cellStyle
	if selected {
		style = selectedCellStyle
	}
	if b.Style != nil {
		if b.Style.TextColor != "" && !selected {
			style = style.Foreground(lipgloss.Color(b.Style.TextColor))
		}
		if b.Style.BackgroundColor != "" {
			style = style.Background(lipgloss.Color(b.Style.BackgroundColor))
		}
	}
	return style.Render(cellIcon(b) + "\n" + cellLabel(b.Label))
}

func (m Model) renderGrid() string {
	rows := make([]string, 0, len(m.grid))
	for r := range m.grid {
		cells := make([]string, 0, len(m.grid[r]))
		for c := range m.grid[r] {
			cells = append(cells, m.renderCell(r, c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderHeader() string {
	title := titleStyle.Render(config.AppName)
	if m.spinning {
		title += m.spinner.View()
	}

	tabs := []string{title}
	for _, p := range m.profiles {
		name := p.Name
		if p.Hotkey != "" {
			name += " " + p.Hotkey
		}
		if p.Active {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}

	prev, next := " ", " "
	if m.nav.HasPreviousPage {
		prev = "‹"
	}
	if m.nav.HasNextPage {
		next = "›"
	}
	total := max(m.nav.TotalPages, 1)
	pageLine := pageLineStyle.Render(fmt.Sprintf("%s Page %d/%d  %s %s",
		prev, m.nav.PageIndex+1, total, m.page.Name, next))

	return headerStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		pageLine,
	))
}

func (m Model) renderFooter() string {
	var status string
	switch m.statusKind {
	case statusPositive:
		status = statusPositiveStyle.Render(m.status)
	case statusNegative:
		status = statusNegativeStyle.Render(m.status)
	default:
		status = statusInfoStyle.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, m.help.View(m.keys))
}

// renderPanel is the full overlay panel without outer margins.
func (m Model) renderPanel() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderGrid(),
		m.renderFooter(),
	)
}

func (m Model) panelHeight() int {
	return lipgloss.Height(m.renderPanel()) + 2*marginTop
}

func (m Model) panelWidth() int {
	return lipgloss.Width(m.renderPanel()) + 2*marginLeft
}

// offsetCut is how many panel lines the current slide offset pushes off the top.
func (m Model) offsetCut() int {
	cut := int(-m.offset + 0.5)
	if cut < 0 {
		return 0
	}
	return cut
}

// geometry reports where each cell sits in the terminal, in cell units, matching
// what View draws.
func (m Model) geometry() dragdrop.GridGeometry {
	origin := dragdrop.Point{
		X: marginLeft,
		Y: float64(marginTop + lipgloss.Height(m.renderHeader()) - m.offsetCut()),
	}
	return dragdrop.UniformGrid(origin, len(m.grid), len(m.grid[0]), cellBoxWidth, cellBoxHeight, 0)
}

// dropPointer is the last mouse position, or the selected cell's center when the
// terminal never reported one.
func (m Model) dropPointer(g dragdrop.GridGeometry) dragdrop.Point {
	if m.pointer.known {
		return m.pointer.at
	}
	for _, c := range g.Cells {
		if c.Position == m.selectedPosition() {
			return dragdrop.Point{X: c.Box.X + c.Box.W/2, Y: c.Box.Y + c.Box.H/2}
		}
	}
	return dragdrop.Point{X: -1, Y: -1}
}
