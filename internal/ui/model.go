package ui

import (
	"log"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kino-6/q-deck-launcher-sub002/internal/app"
	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
	"github.com/kino-6/q-deck-launcher-sub002/internal/core"
	"github.com/kino-6/q-deck-launcher-sub002/internal/navigation"
	"github.com/kino-6/q-deck-launcher-sub002/internal/overlay"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusPositive
	statusNegative
)

// shared holds what the host reads from outside the Bubble Tea loop.
type shared struct {
	panelHeight atomic.Int64
}

// Model is the overlay's Bubble Tea model. All engine state arrives as app messages;
// user input leaves through intents.
type Model struct {
	intents app.Intents
	shared  *shared

	cfg      config.Config
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	spinning bool

	mode   viewMode
	detail *DetailState

	nav      navigation.Context
	page     config.Page
	profiles []navigation.ProfileSummary
	grid     [][]string
	cursor   core.Cell

	visible bool
	offset  float64
	state   overlay.State

	termWidth  int
	termHeight int
	pointer    pointerState

	status     string
	statusKind statusKind
	statusID   int

	configDir  string
	configSeen bool

	Quitting bool
}

func newModel(configDir string, intents app.Intents, sh *shared) Model {
	if sh == nil {
		sh = &shared{}
	}
	s := spinner.New()
	s.Spinner = spinner.Dot

	cfg := config.DefaultConfig()
	cfg.UI.Keys.InitControls()

	m := Model{
		intents:   intents,
		shared:    sh,
		cfg:       cfg,
		keys:      newKeyMap(cfg.UI.Keys),
		help:      help.New(),
		spinner:   s,
		mode:      gridMode,
		page:      config.DefaultPage(),
		configDir: configDir,
	}
	m.grid = config.BuildGrid(m.page)
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(config.AppName)}
	if m.configDir != "" {
		cmds = append(cmds, WatchConfigCmd(m.configDir))
	}
	return tea.Batch(cmds...)
}

// applyConfig switches keys and theme to cfg.
func (m *Model) applyConfig(cfg config.Config) {
	if len(cfg.UI.Keys.NavUp) == 0 {
		cfg.UI.Keys.InitControls()
	}
	m.cfg = cfg
	m.keys = newKeyMap(cfg.UI.Keys)
	applyThemeStyles(cfg)
	log.Printf("Overlay using theme %q", cfg.UI.Window.Theme)
}

// setPage replaces the displayed page and keeps the cursor inside it.
func (m *Model) setPage(ctx navigation.Context, page config.Page, profiles []navigation.ProfileSummary) {
	samePage := ctx.ProfileIndex == m.nav.ProfileIndex && ctx.PageIndex == m.nav.PageIndex
	m.nav = ctx
	m.page = page
	m.profiles = profiles
	m.grid = config.BuildGrid(page)
	if !samePage {
		m.cursor = core.Cell{}
		if m.grid[0][0] == "" {
			if c, ok := core.NextPopulated(m.grid, m.cursor, 1); ok {
				m.cursor = c
			}
		}
	}
	m.cursor = core.MoveCursor(m.cursor, 0, 0, len(m.grid), len(m.grid[0]))
	m.publishPanelHeight()
}

func (m *Model) publishPanelHeight() {
	m.shared.panelHeight.Store(int64(m.panelHeight()))
}

func (m Model) selectedPosition() config.Position {
	return config.Position{Row: m.cursor.Row + 1, Col: m.cursor.Col + 1}
}

func (m Model) selectedButton() (config.Button, bool) {
	return m.page.ButtonAt(m.selectedPosition())
}
