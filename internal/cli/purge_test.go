package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
)

func fixedNow(t *testing.T) {
	t.Helper()
	old := nowFn
	nowFn = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }
	t.Cleanup(func() { nowFn = old })
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPurgeConfigMovesSelected(t *testing.T) {
	fixedNow(t)
	dir := t.TempDir()
	touch(t, filepath.Join(dir, config.ConfigFilename))
	touch(t, filepath.Join(dir, config.NavigationFilename))

	trash, err := PurgeConfig(dir, PurgeOptions{State: true})
	if err != nil {
		t.Fatalf("PurgeConfig: %v", err)
	}
	if want := filepath.Join(dir, "trash", "20260304-050607"); trash != want {
		t.Errorf("Expected trash %s, got %s", want, trash)
	}
	if config.FileExists(filepath.Join(dir, config.NavigationFilename)) {
		t.Error("navigation.toml should be moved")
	}
	if !config.FileExists(filepath.Join(trash, config.NavigationFilename)) {
		t.Error("navigation.toml should be in the trash")
	}
	if !config.FileExists(filepath.Join(dir, config.ConfigFilename)) {
		t.Error("config.yaml was not selected and must stay")
	}
}

func TestPurgeConfigNothingThere(t *testing.T) {
	dir := t.TempDir()
	trash, err := PurgeConfig(dir, PurgeOptions{Config: true, State: true})
	if err != nil || trash != "" {
		t.Errorf("Expected a no-op, got %q, %v", trash, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "trash")); !os.IsNotExist(err) {
		t.Error("No trash folder should be created when nothing moved")
	}
}

func TestPurgeConfigErrors(t *testing.T) {
	if _, err := PurgeConfig(t.TempDir(), PurgeOptions{}); !errors.Is(err, errNoPurgeTarget) {
		t.Errorf("Expected errNoPurgeTarget, got %v", err)
	}
	missing := filepath.Join(t.TempDir(), "gone")
	if _, err := PurgeConfig(missing, PurgeOptions{Config: true}); err == nil {
		t.Error("Expected an error for a missing directory")
	}
}

func TestPurgeCommandAsksFirst(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.ConfigFilename)
	touch(t, cfgPath)

	out, err := run(t, dir, "n\n", "purge", "--config")
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if !strings.Contains(out, "Cancelled") {
		t.Errorf("Expected a cancellation, got %q", out)
	}
	if !config.FileExists(cfgPath) {
		t.Error("Declining must keep the file")
	}

	out, err = run(t, dir, "y\n", "purge", "--config")
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if !strings.Contains(out, "Purge completed") || config.FileExists(cfgPath) {
		t.Errorf("Expected config.yaml to be moved, got %q", out)
	}
}

func TestPurgeCommandAllWithYes(t *testing.T) {
	fixedNow(t)
	dir := t.TempDir()
	touch(t, filepath.Join(dir, config.ConfigFilename))
	touch(t, filepath.Join(dir, config.NavigationFilename))

	if _, err := run(t, dir, "", "purge", "--all", "--yes"); err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	trash := filepath.Join(dir, "trash", "20260304-050607")
	// The command's own log is opened in dir before purge runs.
	for _, name := range []string{config.ConfigFilename, config.NavigationFilename, config.LogFilename} {
		if !config.FileExists(filepath.Join(trash, name)) {
			t.Errorf("Expected %s in the trash", name)
		}
	}
}

func TestPurgeCommandNeedsTarget(t *testing.T) {
	if _, err := run(t, t.TempDir(), "", "purge", "--yes"); !errors.Is(err, errNoPurgeTarget) {
		t.Errorf("Expected errNoPurgeTarget, got %v", err)
	}
}
