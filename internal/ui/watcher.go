package ui

import (
	"log"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
)

// ConfigChangedMsg signals that config.yaml has changed
type ConfigChangedMsg struct {
	Path string
}

// relevantConfigEvent reports whether ev touches config.yaml directly inside dir.
// Saves that go through a temp file and rename show up as Create or Rename.
func relevantConfigEvent(dir string, ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	if filepath.Base(ev.Name) != config.ConfigFilename {
		return false
	}
	return filepath.Clean(filepath.Dir(ev.Name)) == filepath.Clean(dir)
}

// WatchConfigCmd blocks until the next change to config.yaml and reports it.
// Update re-issues it after every change.
func WatchConfigCmd(configDir string) tea.Cmd {
	return func() tea.Msg {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			log.Printf("Failed to create file watcher: %v", err)
			return nil
		}
		defer watcher.Close()

		// The directory is watched rather than the file so atomic replaces are seen.
		if err := watcher.Add(configDir); err != nil {
			log.Printf("Failed to watch config directory: %v", err)
			return nil
		}

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !relevantConfigEvent(configDir, event) {
					continue
				}
				log.Printf("Detected change in: %s", event.Name)
				return ConfigChangedMsg{Path: event.Name}

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Printf("File watcher error: %v", err)
			}
		}
	}
}
