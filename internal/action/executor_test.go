package action

import (
	"errors"
	"os/exec"
	"reflect"
	"strings"
	"testing"

	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
)

type seams struct {
	cmds     []*exec.Cmd
	argv     [][]string
	opened   []string
	startErr error
}

func stubSeams(t *testing.T) *seams {
	t.Helper()
	s := &seams{}
	oldCmd, oldLook, oldStart, oldOpen, oldOpenWith, oldEnv := commandFn, lookPathFn, startFn, openFn, openWithFn, environFn
	t.Cleanup(func() {
		commandFn, lookPathFn, startFn, openFn, openWithFn, environFn = oldCmd, oldLook, oldStart, oldOpen, oldOpenWith, oldEnv
	})
	commandFn = func(name string, args ...string) *exec.Cmd {
		s.argv = append(s.argv, append([]string{name}, args...))
		return exec.Command(name, args...)
	}
	lookPathFn = func(p string) (string, error) { return "", errors.New("not in PATH") }
	startFn = func(cmd *exec.Cmd) error {
		s.cmds = append(s.cmds, cmd)
		return s.startErr
	}
	openFn = func(target string) error {
		s.opened = append(s.opened, target)
		return nil
	}
	openWithFn = func(target, app string) error {
		s.opened = append(s.opened, app+":"+target)
		return nil
	}
	environFn = func() []string { return []string{"HOME=/home/u", "PATH=/bin", "SECRET=x"} }
	return s
}

func TestExecuteLaunchApp(t *testing.T) {
	s := stubSeams(t)
	e := NewExecutor(config.UIConfig{EnvWhitelist: []string{"HOME", "PATH"}})

	_, err := e.Execute(config.Button{
		Label:      "notepad",
		ActionType: config.ActionLaunchApp,
		Config:     map[string]any{"path": `C:\apps\notepad.exe`, "workdir": `C:\apps`},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if want := [][]string{{`C:\apps\notepad.exe`}}; !reflect.DeepEqual(s.argv, want) {
		t.Fatalf("argv = %v, want %v", s.argv, want)
	}
	cmd := s.cmds[0]
	if cmd.Dir != `C:\apps` {
		t.Errorf("Dir = %q", cmd.Dir)
	}
	if want := []string{"HOME=/home/u", "PATH=/bin"}; !reflect.DeepEqual(cmd.Env, want) {
		t.Errorf("Env = %v, want %v", cmd.Env, want)
	}
}

func TestExecuteLaunchScriptUsesInterpreter(t *testing.T) {
	s := stubSeams(t)
	e := NewExecutor(config.UIConfig{})

	_, err := e.Execute(config.Button{
		Label:      "deploy",
		ActionType: config.ActionLaunchApp,
		Config: map[string]any{
			"path":        "/opt/deploy.py",
			"interpreter": "python",
			"args":        []any{"/opt/deploy.py", "--fast"},
		},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if want := []string{"python", "/opt/deploy.py", "--fast"}; !reflect.DeepEqual(s.argv[0], want) {
		t.Fatalf("argv = %v, want %v", s.argv[0], want)
	}
	if got := len(s.cmds[0].Env); got != 3 {
		t.Errorf("empty whitelist should pass the environment through, got %d vars", got)
	}
}

func TestExecuteTerminal(t *testing.T) {
	tests := []struct {
		name  string
		shell string
		over  string
		want  []string
	}{
		{"configured shell", "zsh", "", []string{"zsh", "-lc", "make"}},
		{"per-button shell", "bash", "sh", []string{"sh", "-c", "make"}},
		{"cmd", "cmd", "", []string{"cmd", "/C", "make"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := stubSeams(t)
			e := NewExecutor(config.UIConfig{Shell: tc.shell})
			cfg := map[string]any{"command": "make"}
			if tc.over != "" {
				cfg["shell"] = tc.over
			}
			if _, err := e.Execute(config.Button{Label: "build", ActionType: config.ActionTerminal, Config: cfg}); err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if !reflect.DeepEqual(s.argv[0], tc.want) {
				t.Fatalf("argv = %v, want %v", s.argv[0], tc.want)
			}
		})
	}
}

func TestExecuteOpen(t *testing.T) {
	s := stubSeams(t)
	e := NewExecutor(config.UIConfig{})

	if _, err := e.Execute(config.Button{Label: "doc", ActionType: config.ActionOpen, Config: map[string]any{"target": "/tmp/a.pdf", "verb": "open"}}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := e.Execute(config.Button{Label: "doc", ActionType: config.ActionOpen, Config: map[string]any{"target": "/tmp/b.txt", "app": "gedit"}}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if want := []string{"/tmp/a.pdf", "gedit:/tmp/b.txt"}; !reflect.DeepEqual(s.opened, want) {
		t.Fatalf("opened = %v, want %v", s.opened, want)
	}
	if len(s.cmds) != 0 {
		t.Fatal("Open must not start a process itself")
	}
}

func TestExecuteSystem(t *testing.T) {
	stubSeams(t)
	e := NewExecutor(config.UIConfig{})

	out, err := e.Execute(config.Button{Label: "next", ActionType: config.ActionSystem, Config: map[string]any{"command": "next_page"}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.System != SystemNextPage {
		t.Fatalf("System = %q", out.System)
	}

	_, err = e.Execute(config.Button{Label: "bad", ActionType: config.ActionSystem, Config: map[string]any{"command": "reboot"}})
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("err = %v, want ErrUnknownCommand", err)
	}
}

func TestExecuteErrors(t *testing.T) {
	s := stubSeams(t)
	e := NewExecutor(config.UIConfig{})

	cases := []struct {
		b    config.Button
		want error
	}{
		{config.Button{Label: "x", ActionType: config.ActionLaunchApp}, ErrMissingConfig},
		{config.Button{Label: "x", ActionType: config.ActionOpen}, ErrMissingConfig},
		{config.Button{Label: "x", ActionType: config.ActionTerminal}, ErrMissingConfig},
		{config.Button{Label: "x", ActionType: "Teleport"}, ErrUnknownAction},
	}
	for _, c := range cases {
		if _, err := e.Execute(c.b); !errors.Is(err, c.want) {
			t.Errorf("%s: err = %v, want %v", c.b.ActionType, err, c.want)
		}
	}

	s.startErr = errors.New("permission denied")
	_, err := e.Execute(config.Button{Label: "x", ActionType: config.ActionLaunchApp, Config: map[string]any{"path": "/x"}})
	if err == nil || !strings.Contains(err.Error(), "permission denied") {
		t.Fatalf("err = %v", err)
	}
}
