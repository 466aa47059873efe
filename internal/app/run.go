package app

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/kino-6/q-deck-launcher-sub002/internal/action"
	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
	"github.com/kino-6/q-deck-launcher-sub002/internal/core"
	"github.com/kino-6/q-deck-launcher-sub002/internal/events"
	"github.com/kino-6/q-deck-launcher-sub002/internal/hotkey"
	"github.com/kino-6/q-deck-launcher-sub002/internal/icon"
	"github.com/kino-6/q-deck-launcher-sub002/internal/navigation"
	"github.com/kino-6/q-deck-launcher-sub002/internal/notify"
	"github.com/kino-6/q-deck-launcher-sub002/internal/overlay"
)

// Frontend renders the overlay and feeds user input back to the engine.
type Frontend interface {
	overlay.Host
	Bind(Intents)
	// Send delivers a bus message to the frontend's own event loop.
	Send(msg any)
	// Run blocks until the frontend exits.
	Run() error
	Quit()
}

const shutdownTimeout = 2 * time.Second

// BackendFactory supplies the system hotkey backend.
type BackendFactory func() (hotkey.Backend, error)

// hotkeyBackend falls back to hotkey.NopBackend when the system backend is
// missing, leaving the in-terminal keys as the only way to toggle the overlay.
func hotkeyBackend(newBackend BackendFactory) hotkey.Backend {
	if newBackend == nil {
		log.Printf("No system hotkey backend, global hotkeys are disabled")
		return hotkey.NopBackend{}
	}
	b, err := newBackend()
	if err != nil || b == nil {
		log.Printf("Global hotkeys are disabled: %v", err)
		return hotkey.NopBackend{}
	}
	return b
}

// Run loads the configuration in dir, starts the engine and blocks in fe.Run.
func Run(ctx context.Context, dir string, fe Frontend, newBackend BackendFactory) error {
	logFile, err := core.OpenLog(dir, config.LogFilename)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log.Printf("%s %s starting, config dir %s", config.AppName, config.Version, dir)

	store := config.NewStore(dir)
	cfg, err := store.LoadOrCreate()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config %s:\n%w", store.Path(), err)
	}

	loop := events.NewLoop(256)
	eng := New(Settings{
		Config:    cfg,
		Host:      fe,
		Scheduler: loop,
		Post:      loop.Post,
		Backend:   hotkeyBackend(newBackend),
		Configs:   store,
		State:     navigation.NewFileStore(filepath.Join(dir, config.NavigationFilename)),
		Icons:     icon.NewService(),
		Notifier:  notify.NewDesktop(cfg.NotifyEnabled()),
		NewExecutor: func(ui config.UIConfig) Executor {
			x := action.NewExecutor(ui)
			x.SetOutput(logFile)
			return x
		},
		OnQuit: fe.Quit,
	})
	if err := eng.Bridge(fe.Send); err != nil {
		return err
	}
	fe.Bind(eng)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	loopDone := make(chan error, 1)
	go func() { loopDone <- loop.Run(ctx) }()

	var startErr error
	if err := loop.Call(ctx, func() { startErr = eng.Start() }); err != nil {
		return err
	}
	if startErr != nil {
		log.Printf("Some hotkeys could not be registered:\n%v", startErr)
	}

	if cfg.UI.Window.BoundaryWatch {
		bounds := overlay.ScreenPanelRect(cfg.UI.Window.WidthPx, cfg.UI.Window.HeightPx, cfg.UI.Window.Placement)
		w := &overlay.BoundaryWatcher{
			Bounds:    func() overlay.Rect { return bounds },
			Active:    eng.OverlayActive,
			OnOutside: eng.FocusLost,
		}
		go w.Run(ctx)
	}

	go func() {
		<-ctx.Done()
		fe.Quit()
	}()
	runErr := fe.Run()

	closeCtx, closeCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer closeCancel()
	if err := loop.Call(closeCtx, eng.Close); err != nil {
		log.Printf("Engine shutdown: %v", err)
	}
	loop.Stop()
	cancel()
	<-loopDone
	log.Printf("%s stopped", config.AppName)
	return runErr
}
