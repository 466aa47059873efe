// Package hotkey owns the global key bindings: parsing and normalizing chords,
// rejecting duplicates, claiming them from the OS and dispatching matches.
package hotkey

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
)

// PurposeKind says what a binding does when pressed.
type PurposeKind int

const (
	PurposeSummon PurposeKind = iota
	PurposeProfile
)

// Purpose is either the summon binding or a switch to a specific profile.
type Purpose struct {
	Kind         PurposeKind
	ProfileIndex int
}

func Summon() Purpose { return Purpose{Kind: PurposeSummon} }

func ProfileSwitch(index int) Purpose {
	return Purpose{Kind: PurposeProfile, ProfileIndex: index}
}

func (p Purpose) String() string {
	if p.Kind == PurposeProfile {
		return fmt.Sprintf("profile %d", p.ProfileIndex)
	}
	return "summon"
}

// Binding is a registered combination and what it is for.
type Binding struct {
	Combination Combination
	Purpose     Purpose
}

// Pressed is the message published when a registered combination fires.
type Pressed struct {
	Binding Binding
}

// Handler runs on a match. It must not block.
type Handler func(Binding)

// Request describes one binding to register in bulk.
type Request struct {
	Combination string
	Purpose     Purpose
}

type entry struct {
	binding Binding
	handler Handler
}

// Manager is the registry of global bindings.
type Manager struct {
	mu       sync.Mutex
	backend  Backend
	post     func(func())
	bindings map[string]*entry
	closed   bool
}

// NewManager creates a manager over backend. OS matches are handed to post so that
// handlers run on the caller's event loop; a nil post runs them on the backend's goroutine.
func NewManager(backend Backend, post func(func())) *Manager {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &Manager{
		backend:  backend,
		post:     post,
		bindings: make(map[string]*entry),
	}
}

// Register claims combination for purpose. Equivalent spellings ("Alt+Ctrl+Q" and
// "ctrl+alt+q") count as the same combination.
func (m *Manager) Register(combination string, purpose Purpose, handler Handler) (Binding, error) {
	c, err := Parse(combination)
	if err != nil {
		return Binding{}, &BindingError{Combination: combination, Purpose: purpose, Err: err}
	}
	key := c.String()
	b := Binding{Combination: c, Purpose: purpose}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Binding{}, &BindingError{Combination: c.Display(), Purpose: purpose, Err: ErrClosed}
	}
	if existing, ok := m.bindings[key]; ok {
		p := existing.binding.Purpose
		return Binding{}, &BindingError{Combination: c.Display(), Purpose: purpose, Existing: &p, Err: ErrDuplicateBinding}
	}
	if err := m.backend.Register(c, m.onMatch); err != nil {
		return Binding{}, &BindingError{
			Combination: c.Display(),
			Purpose:     purpose,
			Err:         fmt.Errorf("%w: %w", ErrRegistrationFailed, err),
		}
	}
	m.bindings[key] = &entry{binding: b, handler: handler}
	log.Printf("Registered hotkey %s (%s)", c.Display(), purpose)
	return b, nil
}

// RegisterAll registers every request with the same handler. A failure is collected
// and the remaining requests are still attempted.
func (m *Manager) RegisterAll(reqs []Request, handler Handler) ([]Binding, error) {
	var (
		ok   []Binding
		errs []error
	)
	for _, r := range reqs {
		b, err := m.Register(r.Combination, r.Purpose, handler)
		if err != nil {
			log.Printf("Hotkey setup: %v", err)
			errs = append(errs, err)
			continue
		}
		ok = append(ok, b)
	}
	return ok, errors.Join(errs...)
}

// Unregister releases combination. Unknown or malformed combinations are ignored.
func (m *Manager) Unregister(combination string) {
	c, err := Parse(combination)
	if err != nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.release(c.String())
}

func (m *Manager) release(key string) {
	e, ok := m.bindings[key]
	if !ok {
		return
	}
	delete(m.bindings, key)
	if err := m.backend.Unregister(e.binding.Combination); err != nil {
		log.Printf("Failed to release hotkey %s: %v", e.binding.Combination.Display(), err)
	}
}

// Close releases every binding. Later registrations fail with ErrClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.bindings {
		m.release(key)
	}
	m.closed = true
}

// Bindings lists the registered bindings in normalized order.
func (m *Manager) Bindings() []Binding {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Binding, 0, len(m.bindings))
	for _, e := range m.bindings {
		out = append(out, e.binding)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Combination.String() < out[j].Combination.String()
	})
	return out
}

func (m *Manager) onMatch(combination string) {
	m.post(func() { m.Dispatch(combination) })
}

// Dispatch runs the handler bound to combination, if any. It reports whether one ran.
func (m *Manager) Dispatch(combination string) bool {
	c, err := Parse(combination)
	if err != nil {
		return false
	}
	m.mu.Lock()
	e, ok := m.bindings[c.String()]
	m.mu.Unlock()
	if !ok || e.handler == nil {
		return false
	}
	e.handler(e.binding)
	return true
}
