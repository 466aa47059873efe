package ui

import (
	"net/url"
	"strings"

	"github.com/kino-6/q-deck-launcher-sub002/internal/dragdrop"
)

// Terminals deliver a file dropped onto the window as pasted text. Depending on the
// emulator that is a quoted path, a backslash-escaped path or a file:// URI, one per
// line or several per line.

const escapable = ` '"()&;`

// splitDroppedPaths extracts file paths from pasted drop text.
func splitDroppedPaths(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, splitLine(line)...)
	}
	return out
}

func splitLine(line string) []string {
	if strings.HasPrefix(line, "file://") {
		var out []string
		for _, f := range strings.Fields(line) {
			if p, ok := fromFileURI(f); ok {
				out = append(out, p)
			}
		}
		return out
	}

	tokens, quoted := tokenize(line)
	if !quoted && len(tokens) > 1 {
		// A bare path with spaces splits into fragments that are not absolute paths.
		for _, t := range tokens {
			if !strings.HasPrefix(t, "/") && !dragdrop.IsAbsolute(t) {
				return []string{line}
			}
		}
	}
	return tokens
}

// tokenize splits on unquoted whitespace. quoted reports whether the line used quotes
// or escapes, in which case the split is trusted as is.
func tokenize(line string) (tokens []string, quoted bool) {
	var (
		b     strings.Builder
		quote rune
		open  bool
	)
	flush := func() {
		if open {
			tokens = append(tokens, b.String())
			b.Reset()
			open = false
		}
	}
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			b.WriteRune(r)
		case r == '\'' || r == '"':
			quote, quoted, open = r, true, true
		case r == '\\' && i+1 < len(runes) && strings.ContainsRune(escapable, runes[i+1]):
			i++
			b.WriteRune(runes[i])
			quoted, open = true, true
		case r == ' ' || r == '\t':
			flush()
		default:
			b.WriteRune(r)
			open = true
		}
	}
	flush()
	return tokens, quoted
}

func fromFileURI(s string) (string, bool) {
	u, err := url.Parse(s)
	if err != nil || u.Scheme != "file" || u.Path == "" {
		return "", false
	}
	p := u.Path
	// file:///C:/Users/x -> C:/Users/x
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	if u.Host != "" && u.Host != "localhost" {
		p = `\\` + u.Host + strings.ReplaceAll(p, "/", `\`)
	}
	return p, true
}
