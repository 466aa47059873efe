package app

import (
	"github.com/kino-6/q-deck-launcher-sub002/internal/action"
	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
	"github.com/kino-6/q-deck-launcher-sub002/internal/dragdrop"
	"github.com/kino-6/q-deck-launcher-sub002/internal/navigation"
	"github.com/kino-6/q-deck-launcher-sub002/internal/overlay"
)

// Messages published on the engine bus for the frontend.

type NavigationChanged struct {
	Context  navigation.Context
	Page     config.Page
	Profiles []navigation.ProfileSummary
}

// ConfigReloaded carries the configuration now in force. Start publishes it once
// before the first NavigationChanged.
type ConfigReloaded struct {
	Config config.Config
	Err    error
}

type DropCompleted struct {
	Result dragdrop.Result
	Err    error
}

type UndoCompleted struct {
	Operation dragdrop.Operation
	Err       error
}

type OverlayChanged struct {
	State  overlay.State
	Offset float64
}

type ActionFinished struct {
	Label  string
	System action.SystemCommand
	Err    error
}

// NavigationFailed reports a rejected page or profile switch.
type NavigationFailed struct {
	Err error
}

type QuitRequested struct{}
