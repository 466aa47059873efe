package dragdrop

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
)

// Classification is the action a dropped file maps to.
type Classification struct {
	ActionType   config.ActionType
	IsExecutable bool
}

// Classifier decides by file name only; file contents are never read.
type Classifier struct {
	patterns []glob.Glob
}

// NewClassifier compiles case-insensitive glob patterns matched against the base name.
func NewClassifier(patterns []string) (*Classifier, error) {
	c := &Classifier{}
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("executable pattern %q: %w", p, err)
		}
		c.patterns = append(c.patterns, g)
	}
	return c, nil
}

var defaultClassifier, _ = NewClassifier(config.DefaultExecutablePatterns)

// ClassifyFile uses the default executable patterns.
func ClassifyFile(path string) (Classification, error) {
	return defaultClassifier.Classify(path)
}

// Classify maps executables to LaunchApp and everything else to Open.
func (c *Classifier) Classify(path string) (Classification, error) {
	base := BaseName(path)
	if base == "" || base == "." || base == ".." || strings.HasSuffix(base, ":") {
		return Classification{}, fmt.Errorf("%w: no file name in %q", ErrClassificationAmbiguous, path)
	}
	name := strings.ToLower(base)
	for _, g := range c.patterns {
		if g.Match(name) {
			return Classification{ActionType: config.ActionLaunchApp, IsExecutable: true}, nil
		}
	}
	return Classification{ActionType: config.ActionOpen}, nil
}

// interpreters run script files that are launched rather than opened.
var interpreters = map[string][]string{
	".ps1": {"powershell", "-ExecutionPolicy", "Bypass", "-File"},
	".py":  {"python"},
	".js":  {"node"},
	".sh":  {"sh"},
	".vbs": {"cscript", "//nologo"},
}

// BuildActionConfig fills the action-specific settings for a new button.
func BuildActionConfig(path string, c Classification) map[string]any {
	if c.ActionType != config.ActionLaunchApp {
		return map[string]any{"target": path, "verb": "open"}
	}
	cfg := map[string]any{"path": path}
	if dir := DirName(path); dir != "" {
		cfg["workdir"] = dir
	}
	if argv, ok := interpreters[strings.ToLower(Ext(path))]; ok {
		cfg["interpreter"] = argv[0]
		args := make([]any, 0, len(argv))
		for _, a := range argv[1:] {
			args = append(args, a)
		}
		cfg["args"] = append(args, path)
	}
	return cfg
}
