package core

import (
	"path"
	"runtime"
	"strings"
)

// PrepareEnv filters env down to the variables whose names match a whitelist pattern.
// An empty whitelist passes env through unchanged. Patterns use path.Match syntax and
// compare case-insensitively on Windows.
func PrepareEnv(env []string, whitelist []string) []string {
	if len(whitelist) == 0 {
		return env
	}
	fold := runtime.GOOS == "windows"

	var filtered []string
	for _, e := range env {
		key, _, ok := strings.Cut(e, "=")
		if !ok || key == "" {
			continue
		}
		if envKeyAllowed(key, whitelist, fold) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func envKeyAllowed(key string, whitelist []string, fold bool) bool {
	if fold {
		key = strings.ToUpper(key)
	}
	for _, pattern := range whitelist {
		if fold {
			pattern = strings.ToUpper(pattern)
		}
		if pattern == key {
			return true
		}
		if ok, _ := path.Match(pattern, key); ok {
			return true
		}
	}
	return false
}
