package dragdrop

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
)

// MaxHistory bounds the undo history.
const MaxHistory = 50

// Target names a page by profile and page index.
type Target struct {
	Profile int
	Page    int
}

// Operation is one recorded button creation.
type Operation struct {
	ID     string
	At     time.Time
	Target Target
	Button config.Button
}

// History is a bounded stack of created buttons.
type History struct {
	mu  sync.Mutex
	ops []Operation
	max int
}

func NewHistory(max int) *History {
	if max < 1 {
		max = MaxHistory
	}
	return &History{max: max}
}

// Record pushes a creation and returns its operation.
func (h *History) Record(target Target, b config.Button) Operation {
	op := Operation{ID: uuid.NewString(), At: time.Now(), Target: target, Button: b}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ops = append(h.ops, op)
	if len(h.ops) > h.max {
		h.ops = h.ops[len(h.ops)-h.max:]
	}
	return op
}

// Pop removes and returns the most recent operation.
func (h *History) Pop() (Operation, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.ops) == 0 {
		return Operation{}, false
	}
	op := h.ops[len(h.ops)-1]
	h.ops = h.ops[:len(h.ops)-1]
	return op, true
}

// Push puts an operation back, e.g. after a failed undo.
func (h *History) Push(op Operation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ops = append(h.ops, op)
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.ops)
}
