// Package action runs the command behind a pressed button.
package action

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"

	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
	"github.com/kino-6/q-deck-launcher-sub002/internal/core"
	"github.com/skratchdot/open-golang/open"
)

var (
	commandFn  = exec.Command
	lookPathFn = exec.LookPath
	startFn    = func(cmd *exec.Cmd) error { return cmd.Start() }
	openFn     = open.Start
	openWithFn = open.StartWith
	environFn  = os.Environ
)

var (
	ErrMissingConfig  = errors.New("action config incomplete")
	ErrUnknownAction  = errors.New("unknown action type")
	ErrUnknownCommand = errors.New("unknown system command")
)

// SystemCommand is an engine-level request carried by a System button.
type SystemCommand string

const (
	SystemNone         SystemCommand = ""
	SystemHideOverlay  SystemCommand = "hide_overlay"
	SystemNextPage     SystemCommand = "next_page"
	SystemPreviousPage SystemCommand = "previous_page"
	SystemQuit         SystemCommand = "quit"
)

func (c SystemCommand) Valid() bool {
	switch c {
	case SystemHideOverlay, SystemNextPage, SystemPreviousPage, SystemQuit:
		return true
	}
	return false
}

// Outcome reports what Execute did. System is set only for System buttons.
type Outcome struct {
	System SystemCommand
	PID    int
}

// Executor starts processes for buttons without waiting for them.
type Executor struct {
	shell        string
	envWhitelist []string
	logOutput    *os.File
}

func NewExecutor(ui config.UIConfig) *Executor {
	return &Executor{shell: ui.Shell, envWhitelist: ui.EnvWhitelist}
}

// SetOutput sends stdout and stderr of Terminal commands to f.
func (e *Executor) SetOutput(f *os.File) { e.logOutput = f }

// Execute dispatches on the button's action type.
func (e *Executor) Execute(b config.Button) (Outcome, error) {
	switch b.ActionType {
	case config.ActionLaunchApp:
		return e.launch(b)
	case config.ActionOpen:
		return Outcome{}, e.open(b)
	case config.ActionTerminal:
		return e.terminal(b)
	case config.ActionSystem:
		cmd := SystemCommand(b.ConfigString("command"))
		if !cmd.Valid() {
			return Outcome{}, fmt.Errorf("%w: %q on %q", ErrUnknownCommand, cmd, b.Label)
		}
		return Outcome{System: cmd}, nil
	}
	return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownAction, b.ActionType)
}

func (e *Executor) launch(b config.Button) (Outcome, error) {
	path := b.ConfigString("path")
	if path == "" {
		return Outcome{}, fmt.Errorf("%w: %q has no path", ErrMissingConfig, b.Label)
	}
	args := b.ConfigStrings("args")

	var cmd *exec.Cmd
	if interp := b.ConfigString("interpreter"); interp != "" {
		if len(args) == 0 {
			args = []string{path}
		}
		cmd = commandFn(interp, args...)
	} else {
		bin := path
		if resolved, err := lookPathFn(path); err == nil {
			bin = resolved
		}
		cmd = commandFn(bin, args...)
	}
	cmd.Dir = b.ConfigString("workdir")
	return e.start(b, cmd)
}

func (e *Executor) terminal(b config.Button) (Outcome, error) {
	command := b.ConfigString("command")
	if command == "" {
		return Outcome{}, fmt.Errorf("%w: %q has no command", ErrMissingConfig, b.Label)
	}
	shell := b.ConfigString("shell")
	if shell == "" {
		shell = e.shell
	}
	cmd := buildShellCmd(shell, command)
	cmd.Dir = b.ConfigString("workdir")
	if e.logOutput != nil {
		cmd.Stdout = e.logOutput
		cmd.Stderr = e.logOutput
	}
	return e.start(b, cmd)
}

func (e *Executor) start(b config.Button, cmd *exec.Cmd) (Outcome, error) {
	cmd.Env = core.PrepareEnv(environFn(), e.envWhitelist)
	if err := startFn(cmd); err != nil {
		log.Printf("Starting %q failed: %v", b.Label, err)
		return Outcome{}, fmt.Errorf("start %q: %w", b.Label, err)
	}
	var pid int
	if cmd.Process != nil {
		pid = cmd.Process.Pid
		// Reap without blocking the caller.
		go func() {
			if err := cmd.Wait(); err != nil {
				log.Printf("%q exited: %v", b.Label, err)
			}
		}()
	}
	log.Printf("Started %q (pid %d)", b.Label, pid)
	return Outcome{PID: pid}, nil
}

func (e *Executor) open(b config.Button) error {
	target := b.ConfigString("target")
	if target == "" {
		return fmt.Errorf("%w: %q has no target", ErrMissingConfig, b.Label)
	}
	var err error
	if app := b.ConfigString("app"); app != "" {
		err = openWithFn(target, app)
	} else {
		err = openFn(target)
	}
	if err != nil {
		return fmt.Errorf("open %q: %w", target, err)
	}
	log.Printf("Opened %s", target)
	return nil
}
