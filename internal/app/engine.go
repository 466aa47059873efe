// Package app wires the hotkey, overlay, navigation and drag-drop components
// together around one event loop and runs them under a frontend.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kino-6/q-deck-launcher-sub002/internal/action"
	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
	"github.com/kino-6/q-deck-launcher-sub002/internal/dragdrop"
	"github.com/kino-6/q-deck-launcher-sub002/internal/events"
	"github.com/kino-6/q-deck-launcher-sub002/internal/hotkey"
	"github.com/kino-6/q-deck-launcher-sub002/internal/navigation"
	"github.com/kino-6/q-deck-launcher-sub002/internal/overlay"
)

// Executor runs a button's action.
type Executor interface {
	Execute(config.Button) (action.Outcome, error)
}

// Notifier shows messages outside the overlay.
type Notifier interface {
	Info(title, message string)
	Warn(title, message string)
	SetEnabled(bool)
}

// Intents is what a frontend may ask of the engine. Every call returns immediately;
// the work runs on the engine loop and results arrive as bus messages.
type Intents interface {
	Toggle()
	Hide()
	Activate(pos config.Position)
	NextPage()
	PreviousPage()
	NextProfile()
	PreviousProfile()
	SwitchProfile(index int)
	Interaction()
	FocusLost()
	FocusGained()
	SetModalOpen(open bool)
	DragEnter()
	DragLeave()
	Drop(paths []string, pointer dragdrop.Point, geometry dragdrop.GridGeometry)
	Undo()
	ReloadConfig()
	Quit()
}

// Settings collects the engine's collaborators. Nil fields get working defaults
// except Host, Scheduler and Post.
type Settings struct {
	Config    config.Config
	Host      overlay.Host
	Scheduler events.Scheduler
	Post      func(func()) bool
	Backend   hotkey.Backend
	Configs   navigation.ConfigStore
	State     navigation.StateStore
	Icons     dragdrop.IconSource
	Notifier  Notifier
	// NewExecutor builds the executor for the current UI settings; it is called again
	// after each config reload.
	NewExecutor func(config.UIConfig) Executor
	// OnQuit runs on the loop when a quit is requested.
	OnQuit func()
	// Background starts work that must stay off the loop. Nil runs it on a new goroutine.
	Background func(func())
}

// Engine owns the four components and routes events between them.
type Engine struct {
	post     func(func()) bool
	bus      *events.Bus
	cfg      config.Config
	configs  navigation.ConfigStore
	hotkeys  *hotkey.Manager
	overlay  *overlay.Controller
	nav      *navigation.Manager
	pipeline *dragdrop.Pipeline
	notifier Notifier
	newExec  func(config.UIConfig) Executor
	exec     Executor
	onQuit   func()
	bg       func(func())
	ctx      context.Context
	cancel   context.CancelFunc

	active atomic.Bool
}

// New builds an engine. Call Start once the loop behind s.Post is running.
func New(s Settings) *Engine {
	e := &Engine{
		post:     s.Post,
		bus:      events.NewBus(s.Post),
		cfg:      s.Config,
		configs:  s.Configs,
		notifier: s.Notifier,
		newExec:  s.NewExecutor,
		onQuit:   s.OnQuit,
		bg:       s.Background,
	}
	e.ctx, e.cancel = context.WithCancel(context.Background())
	if e.bg == nil {
		e.bg = func(fn func()) { go fn() }
	}
	if e.notifier == nil {
		e.notifier = nopNotifier{}
	}
	if e.newExec == nil {
		e.newExec = func(ui config.UIConfig) Executor { return action.NewExecutor(ui) }
	}
	e.exec = e.newExec(s.Config.UI)

	backend := s.Backend
	if backend == nil {
		backend = hotkey.NopBackend{}
	}
	e.hotkeys = hotkey.NewManager(backend, func(fn func()) { s.Post(fn) })

	guard := &overlay.DragGuard{}
	e.overlay = overlay.NewController(s.Host, s.Scheduler, OverlayOptions(s.Config), guard)
	e.overlay.OnChange(e.overlayChanged)

	e.nav = navigation.NewManager(s.State, s.Configs)
	e.nav.OnChange(e.navigationChanged)

	classifier, err := dragdrop.NewClassifier(s.Config.UI.Drop.ExecutablePatterns)
	if err != nil {
		log.Printf("Executable patterns rejected, using defaults: %v", err)
		classifier = nil
	}
	e.pipeline = dragdrop.NewPipeline(e.nav, s.Icons, classifier, guard, e.notifier)
	e.notifier.SetEnabled(s.Config.NotifyEnabled())

	_ = events.Subscribe(e.bus, e.onHotkey)
	return e
}

// OverlayOptions derives controller timing from the window settings.
func OverlayOptions(cfg config.Config) overlay.Options {
	opts := overlay.DefaultOptions()
	opts.Animate = cfg.AnimationEnabled()
	opts.Duration = time.Duration(cfg.UI.Window.Animation.DurationMs) * time.Millisecond
	opts.AutoHide = cfg.AutoHideEnabled()
	opts.AutoHideGrace = time.Duration(cfg.UI.Window.AutoHide.GraceMs) * time.Millisecond
	return opts
}

func (e *Engine) Bus() *events.Bus { return e.bus }

// Component accessors. Their methods must be called on the loop.
func (e *Engine) Overlay() *overlay.Controller { return e.overlay }
func (e *Engine) Navigation() *navigation.Manager { return e.nav }
func (e *Engine) Pipeline() *dragdrop.Pipeline { return e.pipeline }
func (e *Engine) Hotkeys() *hotkey.Manager { return e.hotkeys }

// OverlayActive reports whether the panel is anywhere but Hidden. Safe from any goroutine.
func (e *Engine) OverlayActive() bool { return e.active.Load() }

// Bridge forwards every frontend-facing message to send.
func (e *Engine) Bridge(send func(any)) error {
	return errors.Join(
		events.Subscribe(e.bus, func(m NavigationChanged) { send(m) }),
		events.Subscribe(e.bus, func(m NavigationFailed) { send(m) }),
		events.Subscribe(e.bus, func(m ConfigReloaded) { send(m) }),
		events.Subscribe(e.bus, func(m DropCompleted) { send(m) }),
		events.Subscribe(e.bus, func(m UndoCompleted) { send(m) }),
		events.Subscribe(e.bus, func(m OverlayChanged) { send(m) }),
		events.Subscribe(e.bus, func(m ActionFinished) { send(m) }),
		events.Subscribe(e.bus, func(m QuitRequested) { send(m) }),
	)
}

// Start restores navigation, registers hotkeys and announces the initial page.
// It must run on the loop.
func (e *Engine) Start() error {
	ctx := e.nav.Initialize(e.cfg)
	if err := e.nav.LoadError(); err != nil {
		log.Printf("Navigation state unreadable, starting at the first page: %v", err)
	}
	log.Printf("Starting on profile %q page %q", ctx.ProfileName, ctx.PageName)

	err := e.registerHotkeys()
	e.bus.Publish(ConfigReloaded{Config: e.cfg.Clone()})
	e.navigationChanged(ctx)
	return err
}

func (e *Engine) registerHotkeys() error {
	_, err := e.hotkeys.RegisterAll(e.cfg.HotkeyRequests(), func(b hotkey.Binding) {
		e.bus.Publish(hotkey.Pressed{Binding: b})
	})
	if err != nil {
		e.notifier.Warn("Hotkey unavailable", firstLine(err))
	}
	return err
}

// Close releases hotkeys, abandons drops still loading their icon and flushes
// unsaved navigation state. It must run on the loop.
func (e *Engine) Close() {
	e.cancel()
	e.hotkeys.Close()
	if err := e.nav.Flush(); err != nil {
		log.Printf("Navigation state not saved on exit: %v", err)
	}
}

func (e *Engine) onHotkey(p hotkey.Pressed) {
	switch p.Binding.Purpose.Kind {
	case hotkey.PurposeSummon:
		e.overlay.Toggle()
	case hotkey.PurposeProfile:
		if _, err := e.nav.SwitchToProfile(p.Binding.Purpose.ProfileIndex); err != nil {
			log.Printf("Profile hotkey %s: %v", p.Binding.Combination.Display(), err)
			e.bus.Publish(NavigationFailed{Err: err})
			return
		}
		e.overlay.Show()
	}
}

func (e *Engine) overlayChanged(state overlay.State, offset float64) {
	e.active.Store(state != overlay.Hidden)
	e.bus.Publish(OverlayChanged{State: state, Offset: offset})
}

func (e *Engine) navigationChanged(ctx navigation.Context) {
	page, _ := e.nav.CurrentPage()
	e.bus.Publish(NavigationChanged{Context: ctx, Page: page, Profiles: e.nav.Profiles()})
}

// Intents. Each posts its work to the loop.

func (e *Engine) Toggle() { e.post(e.overlay.Toggle) }
func (e *Engine) Hide() { e.post(e.overlay.Hide) }
func (e *Engine) Interaction() { e.post(e.overlay.Interaction) }
func (e *Engine) FocusLost() { e.post(e.overlay.FocusLost) }
func (e *Engine) FocusGained() { e.post(e.overlay.FocusGained) }
func (e *Engine) SetModalOpen(open bool) { e.post(func() { e.overlay.SetModalOpen(open) }) }
func (e *Engine) NextPage() { e.navigate(e.nav.NextPage) }
func (e *Engine) PreviousPage() { e.navigate(e.nav.PreviousPage) }
func (e *Engine) NextProfile() { e.navigate(e.nav.NextProfile) }
func (e *Engine) PreviousProfile() { e.navigate(e.nav.PreviousProfile) }
func (e *Engine) SwitchProfile(index int) {
	e.navigate(func() (navigation.Context, error) { return e.nav.SwitchToProfile(index) })
}

func (e *Engine) navigate(fn func() (navigation.Context, error)) {
	e.post(func() {
		e.overlay.Interaction()
		if _, err := fn(); err != nil {
			if !errors.Is(err, navigation.ErrAtBoundary) {
				log.Printf("Navigation rejected: %v", err)
			}
			e.bus.Publish(NavigationFailed{Err: err})
		}
	})
}

func (e *Engine) DragEnter() {
	e.post(func() {
		e.pipeline.DragEnter()
		e.overlay.Interaction()
	})
}

func (e *Engine) DragLeave() { e.post(e.pipeline.DragLeave) }

// Drop places the file on the loop, loads its icon in the background and commits
// the button back on the loop. DropCompleted is published either way.
func (e *Engine) Drop(paths []string, pointer dragdrop.Point, geometry dragdrop.GridGeometry) {
	e.post(func() {
		e.overlay.Interaction()
		pl, err := e.pipeline.Place(dragdrop.Drop{
			Paths:    paths,
			Pointer:  pointer,
			Geometry: geometry,
		})
		if err != nil {
			e.bus.Publish(DropCompleted{Result: pl.Result(), Err: err})
			return
		}
		e.bg(func() {
			ref := e.pipeline.AcquireIcon(e.ctx, pl.Path, pl.IsExecutable)
			if !e.post(func() { e.commitDrop(pl, ref) }) {
				log.Printf("Drop of %s abandoned on shutdown", pl.Path)
			}
		})
	})
}

func (e *Engine) commitDrop(pl dragdrop.Placement, iconRef string) {
	if e.ctx.Err() != nil {
		e.pipeline.Abort(pl)
		e.bus.Publish(DropCompleted{Result: pl.Result(), Err: e.ctx.Err()})
		return
	}
	res, err := e.pipeline.Commit(pl, iconRef)
	e.overlay.Interaction()
	e.bus.Publish(DropCompleted{Result: res, Err: err})
}

func (e *Engine) Undo() {
	e.post(func() {
		op, err := e.pipeline.UndoLast()
		e.bus.Publish(UndoCompleted{Operation: op, Err: err})
	})
}

func (e *Engine) Quit() { e.post(e.quit) }

func (e *Engine) quit() {
	e.bus.Publish(QuitRequested{})
	if e.onQuit != nil {
		e.onQuit()
	}
}

// Activate runs the button at pos on the current page. Empty cells do nothing.
func (e *Engine) Activate(pos config.Position) {
	e.post(func() {
		page, ok := e.nav.CurrentPage()
		if !ok {
			return
		}
		b, ok := page.ButtonAt(pos)
		if !ok {
			return
		}
		e.overlay.Interaction()
		out, err := e.exec.Execute(b)
		e.bus.Publish(ActionFinished{Label: b.Label, System: out.System, Err: err})
		if err != nil {
			e.notifier.Warn("Action failed", err.Error())
			return
		}
		switch out.System {
		case action.SystemNone, action.SystemHideOverlay:
			e.overlay.Hide()
		case action.SystemNextPage:
			_, _ = e.nav.NextPage()
		case action.SystemPreviousPage:
			_, _ = e.nav.PreviousPage()
		case action.SystemQuit:
			e.quit()
		}
	})
}

// ReloadConfig rereads the config file and applies it when valid. An invalid file
// keeps the running configuration.
func (e *Engine) ReloadConfig() {
	e.post(func() {
		cfg, err := e.reload()
		if err != nil {
			log.Printf("Config reload rejected: %v", err)
			e.notifier.Warn("Config not reloaded", firstLine(err))
		}
		e.bus.Publish(ConfigReloaded{Config: cfg, Err: err})
	})
}

func (e *Engine) reload() (config.Config, error) {
	if e.configs == nil {
		return e.cfg, navigation.ErrNoConfigStore
	}
	cfg, err := e.configs.Load()
	if err != nil {
		return e.cfg, err
	}
	if err := config.Validate(cfg); err != nil {
		return e.cfg, fmt.Errorf("invalid config: %w", err)
	}

	e.cfg = cfg
	e.overlay.SetOptions(OverlayOptions(cfg))
	e.notifier.SetEnabled(cfg.NotifyEnabled())
	e.exec = e.newExec(cfg.UI)
	if c, err := dragdrop.NewClassifier(cfg.UI.Drop.ExecutablePatterns); err == nil {
		e.pipeline.SetClassifier(c)
	} else {
		log.Printf("Executable patterns rejected, keeping previous: %v", err)
	}

	for _, b := range e.hotkeys.Bindings() {
		e.hotkeys.Unregister(b.Combination.String())
	}
	// Hotkey failures are reported on their own and do not reject the config.
	_ = e.registerHotkeys()

	e.nav.ReloadConfig(cfg)
	log.Printf("Config reloaded: %d profiles", len(cfg.Profiles))
	return cfg, nil
}

func firstLine(err error) string {
	s := err.Error()
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

type nopNotifier struct{}

func (nopNotifier) Info(string, string) {}
func (nopNotifier) Warn(string, string) {}
func (nopNotifier) SetEnabled(bool)     {}
