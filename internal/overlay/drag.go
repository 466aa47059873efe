package overlay

import (
	"log"
	"sync"
)

// DragPhase is the state of an external drag over the overlay.
type DragPhase int

const (
	DragIdle DragPhase = iota
	Dragging
)

func (p DragPhase) String() string {
	if p == Dragging {
		return "Dragging"
	}
	return "Idle"
}

// DragEvent drives DragGuard.
type DragEvent int

const (
	DragEnter DragEvent = iota
	DragOver
	DragDrop
	DragLeave
	DragCancel
)

func (e DragEvent) String() string {
	switch e {
	case DragEnter:
		return "enter"
	case DragOver:
		return "over"
	case DragDrop:
		return "drop"
	case DragLeave:
		return "leave"
	case DragCancel:
		return "cancel"
	}
	return "unknown"
}

// DragGuard tracks whether a drag is in progress. Apply is its only mutator.
// Each entry into Dragging bumps Epoch, so a timer armed before a drag can tell
// that one happened even after it ended.
type DragGuard struct {
	mu    sync.Mutex
	phase DragPhase
	epoch uint64
}

// Apply feeds ev to the state machine and returns the resulting phase.
func (g *DragGuard) Apply(ev DragEvent) DragPhase {
	g.mu.Lock()
	defer g.mu.Unlock()
	prev := g.phase
	switch ev {
	case DragEnter, DragOver:
		if g.phase == DragIdle {
			g.phase = Dragging
			g.epoch++
		}
	case DragDrop, DragLeave, DragCancel:
		g.phase = DragIdle
	}
	if prev != g.phase {
		log.Printf("Drag %s: %s -> %s", ev, prev, g.phase)
	}
	return g.phase
}

// Begin is Apply(DragEnter).
func (g *DragGuard) Begin() { g.Apply(DragEnter) }

// End returns the guard to Idle; ev should be DragDrop, DragLeave or DragCancel.
func (g *DragGuard) End(ev DragEvent) { g.Apply(ev) }

func (g *DragGuard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase == Dragging
}

func (g *DragGuard) Phase() DragPhase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

func (g *DragGuard) Epoch() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.epoch
}
