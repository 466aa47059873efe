package ui

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kino-6/q-deck-launcher-sub002/internal/app"
)

const outboxSize = 1024

var errNotBound = errors.New("ui: frontend has no engine bound")

// Terminal is the Bubble Tea frontend. It hosts the overlay panel in the
// current terminal and implements app.Frontend.
type Terminal struct {
	configDir string
	shared    *shared
	alive     atomic.Bool

	mu      sync.Mutex
	program *tea.Program

	// Messages from the engine loop go through outbox so a slow render never
	// blocks the engine.
	outbox chan tea.Msg
	done   chan struct{}
	once   sync.Once

	// programOptions is swapped in tests to run headless.
	programOptions []tea.ProgramOption
}

// NewTerminal returns a frontend that watches configDir for config changes.
func NewTerminal(configDir string) *Terminal {
	t := &Terminal{
		configDir: configDir,
		shared:    &shared{},
		outbox:    make(chan tea.Msg, outboxSize),
		done:      make(chan struct{}),
		programOptions: []tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithMouseAllMotion(),
			tea.WithReportFocus(),
		},
	}
	t.alive.Store(true)
	return t
}

// Bind creates the program around a model that reports to intents.
func (t *Terminal) Bind(intents app.Intents) {
	t.mu.Lock()
	defer t.mu.Unlock()
	model := newModel(t.configDir, intents, t.shared)
	t.program = tea.NewProgram(model, t.programOptions...)
}

func (t *Terminal) Alive() bool { return t.alive.Load() }

func (t *Terminal) SetVisible(visible bool) { t.Send(visibilityMsg{visible: visible}) }

func (t *Terminal) SetOffset(offset float64) { t.Send(offsetMsg{offset: offset}) }

// PanelHeight is the rendered panel height in terminal lines.
func (t *Terminal) PanelHeight() float64 {
	if h := t.shared.panelHeight.Load(); h > 0 {
		return float64(h)
	}
	return float64(newModel("", nil, nil).panelHeight())
}

// Send queues msg for the program. It never blocks once the frontend has exited.
func (t *Terminal) Send(msg any) {
	select {
	case <-t.done:
	case t.outbox <- msg:
	}
}

func (t *Terminal) Quit() { t.Send(tea.QuitMsg{}) }

// Run blocks until the program exits.
func (t *Terminal) Run() error {
	t.mu.Lock()
	p := t.program
	t.mu.Unlock()
	if p == nil {
		return errNotBound
	}

	go t.pump(p)
	defer t.once.Do(func() { close(t.done) })
	defer t.alive.Store(false)

	_, err := p.Run()
	if err != nil {
		log.Printf("Terminal frontend stopped: %v", err)
	}
	return err
}

func (t *Terminal) pump(p *tea.Program) {
	for {
		select {
		case <-t.done:
			return
		case msg := <-t.outbox:
			p.Send(msg)
		}
	}
}
