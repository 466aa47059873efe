package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderSizeOverlay shows a centered panel with current and required dimensions
func (m Model) renderSizeOverlay(reqW, reqH int) string {
	title := titleStyle.Render("Terminal too small")
	info := helpStyle.Render(
		fmt.Sprintf("Current: %dx%d  |  Required: %dx%d",
			m.termWidth, m.termHeight, reqW, reqH),
	)
	hint := helpStyle.Render("Hint: enlarge the window or use a page with fewer rows or columns")

	box := lipgloss.JoinVertical(lipgloss.Left, title, info, hint)

	overlay := lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FF5F5F")).
		Align(lipgloss.Center).
		Render(box)

	return m.place(overlay)
}

func (m Model) viewHelpMode() string {
	return m.place(popupStyle.Render(m.help.View(m.keys) + "\n\n" + helpStyle.Render("any key to close")))
}

func (m Model) viewDetailMode() string {
	if m.detail == nil {
		return m.place(popupStyle.Render("No button selected"))
	}

	wrapWidth := m.termWidth - 10
	if wrapWidth > 80 {
		wrapWidth = 80
	}
	if wrapWidth < 20 {
		wrapWidth = 20
	}
	wrap := popupValueStyle.Width(wrapWidth)

	var raw []string
	if strings.TrimSpace(m.detail.Title) != "" {
		raw = append(raw, titleStyle.Render(m.detail.Title))
	}
	if strings.TrimSpace(m.detail.Value) != "" {
		label := "Value:"
		if m.detail.KeyLabel != "" {
			label = m.detail.KeyLabel + ":"
		}
		raw = append(raw, "", popupLabelStyle.Render(label), wrap.Render(m.detail.Value))
	}
	if len(m.detail.Meta) > 0 {
		raw = append(raw, "")
		for _, meta := range m.detail.Meta {
			raw = append(raw, popupLabelStyle.Render(meta.Label+": ")+popupValueStyle.Render(meta.Value))
		}
	}
	raw = append(raw, "", helpStyle.Render("y to copy • any key to close"))

	return m.place(popupStyle.Render(lipgloss.JoinVertical(lipgloss.Left, raw...)))
}
