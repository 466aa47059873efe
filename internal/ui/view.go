package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
)

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	if !m.visible {
		return m.viewHidden()
	}

	if m.termWidth > 0 && m.termHeight > 0 {
		if w, h := m.panelWidth(), m.panelHeight(); m.termWidth < w || m.termHeight < h {
			return m.renderSizeOverlay(w, h)
		}
	}

	switch m.mode {
	case detailMode:
		return m.viewDetailMode()
	case helpMode:
		return m.viewHelpMode()
	}
	return m.slide(appStyle.Render(m.renderPanel()))
}

// slide drops the lines the current offset has pushed above the top edge.
func (m Model) slide(s string) string {
	cut := m.offsetCut()
	if cut == 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if cut >= len(lines) {
		return ""
	}
	return strings.Join(lines[cut:], "\n")
}

func (m Model) viewHidden() string {
	summon := "the summon hotkey"
	if hk := m.cfg.UI.Summon.Hotkeys; len(hk) > 0 {
		summon = strings.Join(hk, " or ")
	}
	hint := hiddenHintStyle.Render(config.AppName + " is hidden. Press " + summon + " or enter to show it.")
	return appStyle.Render(hint)
}

// place centers content in the terminal when its size is known.
func (m Model) place(content string) string {
	if m.termWidth <= 0 || m.termHeight <= 0 {
		return appStyle.Render(content)
	}
	return lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center, content)
}
