// Package oshotkey claims global hotkeys from the operating system.
//
// golang.design/x/hotkey opens the X11 display in its package init and panics
// when there is none, so on Linux the backend is only built with the x11hotkey
// tag. The nohotkey tag leaves it out everywhere. Without it New reports
// ErrUnavailable and the overlay runs on in-terminal keys alone.
package oshotkey
