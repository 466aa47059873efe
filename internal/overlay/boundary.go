package overlay

import (
	"context"
	"log"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"
)

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r (right and bottom edges excluded).
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

const dropdownTopMargin = 20

// PanelRect places a width x height panel on a screen of the given size.
// "dropdown-top" centres horizontally 20px below the top edge; "center" centres on both axes.
func PanelRect(screenW, screenH, width, height int, placement string) Rect {
	x := (screenW - width) / 2
	if x < 0 {
		x = 0
	}
	switch placement {
	case "center":
		y := (screenH - height) / 2
		if y < 0 {
			y = 0
		}
		return Rect{X: x, Y: y, W: width, H: height}
	default:
		return Rect{X: x, Y: dropdownTopMargin, W: width, H: height}
	}
}

// ScreenPanelRect is PanelRect on the main display.
func ScreenPanelRect(width, height int, placement string) Rect {
	sw, sh := robotgo.GetScreenSize()
	return PanelRect(sw, sh, width, height, placement)
}

// BoundaryWatcher reports mouse presses outside the panel through a global mouse hook.
type BoundaryWatcher struct {
	Bounds func() Rect
	// Active gates reporting, normally "overlay is not Hidden".
	Active func() bool
	// OnOutside is called from the hook goroutine; it should post to the loop.
	OnOutside func()
}

// Run listens until ctx is cancelled.
func (w *BoundaryWatcher) Run(ctx context.Context) {
	evChan := hook.Start()
	defer hook.End()
	log.Printf("Boundary watcher started")

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-evChan:
			if !ok {
				return
			}
			if w.Active != nil && !w.Active() {
				continue
			}
			if isOutsideClick(ev, w.Bounds()) {
				w.OnOutside()
			}
		}
	}
}

func isOutsideClick(ev hook.Event, bounds Rect) bool {
	if ev.Kind != hook.MouseHold && ev.Kind != hook.MouseDown {
		return false
	}
	return !bounds.Contains(int(ev.X), int(ev.Y))
}
