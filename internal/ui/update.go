package ui

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kino-6/q-deck-launcher-sub002/internal/action"
	"github.com/kino-6/q-deck-launcher-sub002/internal/app"
	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
	"github.com/kino-6/q-deck-launcher-sub002/internal/core"
	"github.com/kino-6/q-deck-launcher-sub002/internal/dragdrop"
	"github.com/kino-6/q-deck-launcher-sub002/internal/navigation"
)

const statusTTL = 3 * time.Second

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.help.Width = msg.Width
		m.publishPanelHeight()
		return m, nil

	case visibilityMsg:
		m.visible = msg.visible
		if !m.visible {
			m.closeModal()
		}
		return m, nil

	case offsetMsg:
		m.offset = msg.offset
		return m, nil

	case tea.FocusMsg:
		m.intents.FocusGained()
		return m, nil

	case tea.BlurMsg:
		m.intents.FocusLost()
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if msg.Paste {
			return m.handlePaste(string(msg.Runes))
		}
		if !m.visible {
			// Keys typed into the collapsed terminal still reach us.
			if key.Matches(msg, m.keys.Quit) {
				m.intents.Quit()
			} else if msg.String() == "enter" || msg.String() == " " {
				m.intents.Toggle()
			}
			return m, nil
		}
		m.intents.Interaction()
		switch m.mode {
		case detailMode:
			return m.updateDetailMode(msg)
		case helpMode:
			m.closeModal()
			return m, nil
		}
		return m.updateGridMode(msg)

	case app.NavigationChanged:
		m.setPage(msg.Context, msg.Page, msg.Profiles)
		return m, nil

	case app.NavigationFailed:
		if errors.Is(msg.Err, navigation.ErrAtBoundary) {
			return m.setStatus("No more pages that way", statusInfo)
		}
		return m.setStatus(msg.Err.Error(), statusNegative)

	case app.ConfigReloaded:
		if msg.Err != nil {
			return m.setStatus("Config not reloaded: "+firstLine(msg.Err), statusNegative)
		}
		first := !m.configSeen
		m.configSeen = true
		m.applyConfig(msg.Config)
		m.publishPanelHeight()
		if first {
			return m, nil
		}
		return m.setStatus("Config reloaded", statusPositive)

	case app.DropCompleted:
		if msg.Err != nil {
			return m.setStatus(firstLine(msg.Err), statusNegative)
		}
		pos := msg.Result.Button.Position
		m.cursor = core.Cell{Row: pos.Row - 1, Col: pos.Col - 1}
		text := fmt.Sprintf("Added %q at %s", msg.Result.Button.Label, pos)
		if n := len(msg.Result.Ignored); n > 0 {
			text += fmt.Sprintf(", %d more file(s) ignored", n)
		}
		return m.setStatus(text, statusPositive)

	case app.UndoCompleted:
		if msg.Err != nil {
			if errors.Is(msg.Err, dragdrop.ErrNothingToUndo) {
				return m.setStatus("Nothing to undo", statusInfo)
			}
			return m.setStatus(firstLine(msg.Err), statusNegative)
		}
		return m.setStatus(fmt.Sprintf("Removed %q", msg.Operation.Button.Label), statusInfo)

	case app.ActionFinished:
		if msg.Err != nil {
			return m.setStatus(fmt.Sprintf("%s: %s", msg.Label, firstLine(msg.Err)), statusNegative)
		}
		if msg.System == action.SystemNone {
			return m.setStatus("Launched "+msg.Label, statusPositive)
		}
		return m, nil

	case app.OverlayChanged:
		m.state = msg.State
		m.offset = msg.Offset
		if m.state.Animating() && !m.spinning {
			m.spinning = true
			return m, m.spinner.Tick
		}
		return m, nil

	case app.QuitRequested:
		m.Quitting = true
		return m, tea.Quit

	case spinner.TickMsg:
		if !m.state.Animating() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusClearMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil

	case ConfigChangedMsg:
		log.Printf("Config file changed: %s", msg.Path)
		m.intents.ReloadConfig()
		return m, WatchConfigCmd(m.configDir)
	}
	return m, nil
}

func (m Model) updateGridMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows, cols := len(m.grid), len(m.grid[0])

	if ok, idx := IsProfileSwitch(msg, profileSwitchModifier); ok {
		m.intents.SwitchProfile(idx)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.intents.Quit()
	case key.Matches(msg, m.keys.Hide):
		m.intents.Hide()
	case key.Matches(msg, m.keys.Up):
		m.cursor = core.MoveCursor(m.cursor, -1, 0, rows, cols)
	case key.Matches(msg, m.keys.Down):
		m.cursor = core.MoveCursor(m.cursor, 1, 0, rows, cols)
	case key.Matches(msg, m.keys.Left):
		m.cursor = core.MoveCursor(m.cursor, 0, -1, rows, cols)
	case key.Matches(msg, m.keys.Right):
		m.cursor = core.MoveCursor(m.cursor, 0, 1, rows, cols)
	case key.Matches(msg, m.keys.Jump):
		m.cursor, _ = core.NextPopulated(m.grid, m.cursor, 1)
	case key.Matches(msg, m.keys.JumpBack):
		m.cursor, _ = core.NextPopulated(m.grid, m.cursor, -1)
	case key.Matches(msg, m.keys.Select):
		m.intents.Activate(m.selectedPosition())
	case key.Matches(msg, m.keys.NextPage):
		m.intents.NextPage()
	case key.Matches(msg, m.keys.PrevPage):
		m.intents.PreviousPage()
	case key.Matches(msg, m.keys.ProfileNext):
		m.intents.NextProfile()
	case key.Matches(msg, m.keys.ProfilePrev):
		m.intents.PreviousProfile()
	case key.Matches(msg, m.keys.Undo):
		m.intents.Undo()
	case key.Matches(msg, m.keys.Details):
		if b, ok := m.selectedButton(); ok {
			m.openModal(detailMode)
			m.detail = detailFor(b)
		}
	case key.Matches(msg, m.keys.Copy):
		return m.copySelected()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = true
		m.openModal(helpMode)
	}
	return m, nil
}

func (m Model) updateDetailMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Copy) && m.detail != nil {
		if CopyToClipboard(m.detail.Value) {
			m.closeModal()
			return m.setStatus("Copied to clipboard", statusPositive)
		}
	}
	m.closeModal()
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	m.pointer = pointerState{known: true, at: dragdrop.Point{X: float64(msg.X), Y: float64(msg.Y)}}
	if !m.visible || m.mode != gridMode || msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.intents.PreviousPage()
	case tea.MouseButtonWheelDown:
		m.intents.NextPage()
	case tea.MouseButtonLeft, tea.MouseButtonRight:
		pos, ok := dragdrop.ResolveDropPosition(m.pointer.at.X, m.pointer.at.Y, m.geometry())
		if !ok {
			return m, nil
		}
		m.intents.Interaction()
		m.cursor = core.Cell{Row: pos.Row - 1, Col: pos.Col - 1}
		if msg.Button == tea.MouseButtonRight {
			if b, ok := m.page.ButtonAt(pos); ok {
				m.openModal(detailMode)
				m.detail = detailFor(b)
			}
			return m, nil
		}
		m.intents.Activate(pos)
	}
	return m, nil
}

// handlePaste treats pasted file paths as a drop at the pointer.
func (m Model) handlePaste(text string) (tea.Model, tea.Cmd) {
	paths := splitDroppedPaths(text)
	if len(paths) == 0 || !m.visible {
		return m, nil
	}
	g := m.geometry()
	m.intents.DragEnter()
	m.intents.Drop(paths, m.dropPointer(g), g)
	return m, nil
}

func (m Model) copySelected() (tea.Model, tea.Cmd) {
	b, ok := m.selectedButton()
	if !ok {
		return m, nil
	}
	target := buttonTarget(b)
	if target == "" || !CopyToClipboard(target) {
		return m.setStatus("Nothing to copy", statusInfo)
	}
	return m.setStatus("Copied "+target, statusPositive)
}

func (m *Model) openModal(mode viewMode) {
	m.mode = mode
	m.intents.SetModalOpen(true)
}

func (m *Model) closeModal() {
	if m.mode == gridMode {
		return
	}
	m.mode = gridMode
	m.detail = nil
	m.help.ShowAll = false
	if m.intents != nil {
		m.intents.SetModalOpen(false)
	}
}

func (m Model) setStatus(text string, kind statusKind) (tea.Model, tea.Cmd) {
	m.statusID++
	m.status = text
	m.statusKind = kind
	id := m.statusID
	return m, tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusClearMsg{id: id}
	})
}

// buttonTarget is what a button points at: a path, a document or a command.
func buttonTarget(b config.Button) string {
	switch b.ActionType {
	case config.ActionLaunchApp:
		return b.ConfigString("path")
	case config.ActionOpen:
		return b.ConfigString("target")
	case config.ActionTerminal, config.ActionSystem:
		return b.ConfigString("command")
	}
	return ""
}

func detailFor(b config.Button) *DetailState {
	d := &DetailState{
		Title:    b.Label,
		KeyLabel: "Target",
		Value:    buttonTarget(b),
		Meta: []DetailMeta{
			{Label: "Action", Value: string(b.ActionType)},
			{Label: "Cell", Value: b.Position.String()},
		},
	}
	switch b.ActionType {
	case config.ActionLaunchApp:
		d.KeyLabel = "Path"
		if wd := b.ConfigString("workdir"); wd != "" {
			d.Meta = append(d.Meta, DetailMeta{Label: "Workdir", Value: wd})
		}
		if in := b.ConfigString("interpreter"); in != "" {
			d.Meta = append(d.Meta, DetailMeta{Label: "Interpreter", Value: in})
		}
	case config.ActionTerminal, config.ActionSystem:
		d.KeyLabel = "Command"
	}
	if b.Icon != "" {
		d.Meta = append(d.Meta, DetailMeta{Label: "Icon", Value: shortIcon(b.Icon)})
	}
	return d
}

func shortIcon(ref string) string {
	const limit = 40
	if len(ref) > limit {
		return ref[:limit] + "…"
	}
	return ref
}

func firstLine(err error) string {
	s := err.Error()
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
