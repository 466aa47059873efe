package ui

import (
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestRelevantConfigEvent(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	cases := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write", fsnotify.Event{Name: cfgPath, Op: fsnotify.Write}, true},
		{"atomic replace", fsnotify.Event{Name: cfgPath, Op: fsnotify.Create}, true},
		{"rename", fsnotify.Event{Name: cfgPath, Op: fsnotify.Rename}, true},
		{"chmod only", fsnotify.Event{Name: cfgPath, Op: fsnotify.Chmod}, false},
		{"navigation state", fsnotify.Event{Name: filepath.Join(dir, "navigation.toml"), Op: fsnotify.Write}, false},
		{"temp file", fsnotify.Event{Name: filepath.Join(dir, "config.yaml.tmp"), Op: fsnotify.Create}, false},
		{"subdirectory", fsnotify.Event{Name: filepath.Join(dir, "backup", "config.yaml"), Op: fsnotify.Write}, false},
	}
	for _, c := range cases {
		if got := relevantConfigEvent(dir, c.ev); got != c.want {
			t.Errorf("%s: got %t, want %t", c.name, got, c.want)
		}
	}
}
