package dragdrop

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// MaxLabelWidth is the widest label, in terminal cells, before truncation.
const MaxLabelWidth = 20

var windowsAbs = regexp.MustCompile(`^([A-Za-z]:[\\/]|\\\\)`)

// IsAbsolute accepts native absolute paths plus Windows drive and UNC paths on any OS.
func IsAbsolute(path string) bool {
	return filepath.IsAbs(path) || windowsAbs.MatchString(path)
}

// NormalizePath trims the path and makes it absolute against cwd.
func NormalizePath(path, cwd string) string {
	path = strings.TrimSpace(path)
	if path == "" || IsAbsolute(path) || cwd == "" {
		return path
	}
	return filepath.Join(cwd, path)
}

func lastSep(path string) int {
	return strings.LastIndexAny(path, `/\`)
}

// BaseName is the last element of path, splitting on both '/' and '\'.
func BaseName(path string) string {
	path = strings.TrimRight(path, `/\`)
	if i := lastSep(path); i >= 0 {
		return path[i+1:]
	}
	return path
}

// DirName is everything before the last separator, or "" when there is none.
func DirName(path string) string {
	path = strings.TrimRight(path, `/\`)
	i := lastSep(path)
	if i < 0 {
		return ""
	}
	if i == 0 {
		return path[:1]
	}
	dir := path[:i]
	if strings.HasSuffix(dir, ":") {
		return path[:i+1]
	}
	return dir
}

// Ext is the extension of the base name, including the dot.
func Ext(path string) string {
	return filepath.Ext(BaseName(path))
}

// DeriveLabel is the base name without its extension, truncated to MaxLabelWidth cells.
func DeriveLabel(path string) string {
	base := BaseName(path)
	label := strings.TrimSuffix(base, filepath.Ext(base))
	if label == "" {
		label = base
	}
	if runewidth.StringWidth(label) > MaxLabelWidth {
		label = runewidth.Truncate(label, MaxLabelWidth, "...")
	}
	return label
}
