package ui

import (
	"github.com/kino-6/q-deck-launcher-sub002/internal/dragdrop"
)

// The overlay is built on Bubble Tea, which follows the Elm Architecture (Model-View-Update).
// These shared types describe the pieces that move through that loop.

type viewMode int

const (
	gridMode viewMode = iota
	detailMode
	helpMode
)

type (
	// Sent by the host when the engine moves the panel.
	visibilityMsg struct{ visible bool }
	offsetMsg     struct{ offset float64 }

	statusClearMsg struct{ id int }
)

// DetailState defines the content for the button detail popup.
type DetailState struct {
	Title    string
	KeyLabel string // Label for the main value (e.g. "Path", "Command")
	Value    string
	Meta     []DetailMeta
}

// DetailMeta represents a single key-value pair in the detail view metadata section.
type DetailMeta struct {
	Label string
	Value string
}

// pointerState tracks the last mouse position reported by the terminal, in cells.
type pointerState struct {
	known bool
	at    dragdrop.Point
}
