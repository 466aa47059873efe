// Package navigation owns which profile and page are active, persists that position,
// and is the only writer of the profile set.
package navigation

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
	"github.com/kino-6/q-deck-launcher-sub002/internal/core"
	"github.com/sahilm/fuzzy"
)

var (
	ErrCellOutOfBounds = errors.New("cell outside page grid")
	ErrCellOccupied    = errors.New("cell already occupied")
	ErrNoButton        = errors.New("no button at cell")
)

// ConfigStore persists the full configuration document.
type ConfigStore interface {
	Load() (config.Config, error)
	Save(config.Config) error
}

// Manager holds the profile set and the current (profile, page) position.
type Manager struct {
	mu      sync.Mutex
	cfg     config.Config
	profile int
	page    int

	store   StateStore
	configs ConfigStore
	now     func() time.Time
	dirty   bool
	loadErr error

	onChange func(Context)
}

// NewManager creates a manager. configs may be nil when buttons are never edited.
func NewManager(store StateStore, configs ConfigStore) *Manager {
	return &Manager{store: store, configs: configs, now: time.Now}
}

// OnChange registers fn to receive the context after every successful change.
func (m *Manager) OnChange(fn func(Context)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// Initialize installs cfg and restores the persisted position. It never fails: a
// missing or unreadable record starts at (0, 0), and stale indices are clamped.
func (m *Manager) Initialize(cfg config.Config) Context {
	m.mu.Lock()
	m.cfg = cfg.Clone()
	st, err := m.store.Load()
	if err != nil {
		log.Printf("Navigation state unusable, starting at first profile: %v", err)
		m.loadErr = err
		st = PersistedState{}
	}
	m.profile, m.page = st.CurrentProfileIndex, st.CurrentPageIndex
	m.clampLocked()
	ctx := m.contextLocked()
	m.mu.Unlock()
	log.Printf("Navigation restored to profile %d (%s) page %d", ctx.ProfileIndex, ctx.ProfileName, ctx.PageIndex)
	return ctx
}

// LoadError is the error that forced Initialize back to defaults, if any.
func (m *Manager) LoadError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadErr
}

func (m *Manager) Context() Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.contextLocked()
}

// Config returns a copy of the current configuration.
func (m *Manager) Config() config.Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg.Clone()
}

// CurrentPage returns a copy of the active page.
func (m *Manager) CurrentPage() (config.Page, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pg := m.pageLocked(m.profile, m.page)
	if pg == nil {
		return config.Page{}, false
	}
	return pg.Clone(), true
}

// Page returns a copy of any page by index.
func (m *Manager) Page(profile, page int) (config.Page, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pg := m.pageLocked(profile, page)
	if pg == nil {
		return config.Page{}, false
	}
	return pg.Clone(), true
}

func (m *Manager) Profiles() []ProfileSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ProfileSummary, len(m.cfg.Profiles))
	for i, p := range m.cfg.Profiles {
		out[i] = ProfileSummary{Index: i, Name: p.Name, Hotkey: p.Hotkey, Pages: len(p.Pages), Active: i == m.profile}
	}
	return out
}

// Pages lists the pages of the active profile.
func (m *Manager) Pages() []PageSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile >= len(m.cfg.Profiles) {
		return nil
	}
	pages := m.cfg.Profiles[m.profile].Pages
	out := make([]PageSummary, len(pages))
	for i, p := range pages {
		out[i] = PageSummary{Index: i, Name: p.Name, Rows: p.Rows, Cols: p.Cols, Buttons: len(p.Buttons), Active: i == m.page}
	}
	return out
}

// SwitchToProfile activates profile index and always returns to its first page.
func (m *Manager) SwitchToProfile(index int) (Context, error) {
	m.mu.Lock()
	if index < 0 || index >= len(m.cfg.Profiles) {
		ctx := m.contextLocked()
		m.mu.Unlock()
		return ctx, &IndexError{What: "profile", Index: index, Count: len(m.cfg.Profiles)}
	}
	m.profile = index
	m.page = 0
	return m.commitLocked()
}

// SwitchToProfileByName matches name exactly (case-sensitive).
func (m *Manager) SwitchToProfileByName(name string) (Context, error) {
	m.mu.Lock()
	names := make([]string, len(m.cfg.Profiles))
	idx := -1
	for i, p := range m.cfg.Profiles {
		names[i] = p.Name
		if idx < 0 && p.Name == name {
			idx = i
		}
	}
	ctx := m.contextLocked()
	m.mu.Unlock()

	if idx < 0 {
		return ctx, &NotFoundError{Name: name, Suggestions: suggest(name, names)}
	}
	return m.SwitchToProfile(idx)
}

func suggest(name string, names []string) []string {
	var out []string
	for _, match := range fuzzy.Find(name, names) {
		out = append(out, match.Str)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// NextProfile and PreviousProfile cycle through profiles, wrapping at the ends.
func (m *Manager) NextProfile() (Context, error)     { return m.stepProfile(1) }
func (m *Manager) PreviousProfile() (Context, error) { return m.stepProfile(-1) }

func (m *Manager) stepProfile(dir int) (Context, error) {
	m.mu.Lock()
	next, ok := core.StepIndex(m.profile, dir, len(m.cfg.Profiles), true)
	m.mu.Unlock()
	if !ok {
		return m.Context(), &IndexError{What: "profile", Index: next, Count: 0}
	}
	return m.SwitchToProfile(next)
}

// SwitchToPage activates page index within the current profile.
func (m *Manager) SwitchToPage(index int) (Context, error) {
	m.mu.Lock()
	count := m.pageCountLocked()
	if index < 0 || index >= count {
		ctx := m.contextLocked()
		m.mu.Unlock()
		return ctx, &IndexError{What: "page", Index: index, Count: count}
	}
	m.page = index
	return m.commitLocked()
}

// NextPage moves forward one page. On the last page it returns ErrAtBoundary and
// changes nothing.
func (m *Manager) NextPage() (Context, error) { return m.stepPage(1) }

// PreviousPage moves back one page. On the first page it returns ErrAtBoundary and
// changes nothing.
func (m *Manager) PreviousPage() (Context, error) { return m.stepPage(-1) }

func (m *Manager) stepPage(dir int) (Context, error) {
	m.mu.Lock()
	count := m.pageCountLocked()
	next, ok := core.StepIndex(m.page, dir, count, false)
	if !ok {
		ctx := m.contextLocked()
		m.mu.Unlock()
		edge := "last"
		if dir < 0 {
			edge = "first"
		}
		return ctx, fmt.Errorf("%w: already on the %s page (%d of %d)", ErrAtBoundary, edge, ctx.PageIndex+1, count)
	}
	m.page = next
	return m.commitLocked()
}

// Reset returns to the first page of the first profile.
func (m *Manager) Reset() Context {
	m.mu.Lock()
	m.profile, m.page = 0, 0
	ctx, _ := m.commitLocked()
	return ctx
}

// ReloadConfig installs an externally edited configuration and clamps the position.
func (m *Manager) ReloadConfig(cfg config.Config) Context {
	m.mu.Lock()
	m.cfg = cfg.Clone()
	before := [2]int{m.profile, m.page}
	m.clampLocked()
	if before != [2]int{m.profile, m.page} {
		ctx, _ := m.commitLocked()
		return ctx
	}
	ctx := m.contextLocked()
	fn := m.onChange
	m.mu.Unlock()
	if fn != nil {
		fn(ctx)
	}
	return ctx
}

// AddButton places b on the given page, writes the whole configuration, and reloads
// it from disk so memory always matches what was persisted.
func (m *Manager) AddButton(profile, page int, b config.Button) (config.Button, error) {
	var created config.Button
	err := m.mutateConfig(profile, page, func(pg *config.Page) error {
		if !pg.InBounds(b.Position) {
			return fmt.Errorf("%w: %s on %dx%d page", ErrCellOutOfBounds, b.Position, pg.Rows, pg.Cols)
		}
		if existing, taken := pg.ButtonAt(b.Position); taken {
			return fmt.Errorf("%w: %s holds %q", ErrCellOccupied, b.Position, existing.Label)
		}
		pg.Buttons = append(pg.Buttons, b.Clone())
		return nil
	}, func(pg *config.Page) {
		created, _ = pg.ButtonAt(b.Position)
	})
	return created, err
}

// RemoveButton deletes the button at pos and persists like AddButton.
func (m *Manager) RemoveButton(profile, page int, pos config.Position) (config.Button, error) {
	var removed config.Button
	err := m.mutateConfig(profile, page, func(pg *config.Page) error {
		i := pg.ButtonIndex(pos)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrNoButton, pos)
		}
		removed = pg.Buttons[i]
		pg.Buttons = append(pg.Buttons[:i], pg.Buttons[i+1:]...)
		return nil
	}, nil)
	return removed, err
}

func (m *Manager) mutateConfig(profile, page int, edit func(*config.Page) error, after func(*config.Page)) error {
	m.mu.Lock()
	if m.configs == nil {
		m.mu.Unlock()
		return ErrNoConfigStore
	}
	if profile < 0 || profile >= len(m.cfg.Profiles) {
		m.mu.Unlock()
		return &IndexError{What: "profile", Index: profile, Count: len(m.cfg.Profiles)}
	}
	if n := len(m.cfg.Profiles[profile].Pages); page < 0 || page >= n {
		m.mu.Unlock()
		return &IndexError{What: "page", Index: page, Count: n}
	}

	next := m.cfg.Clone()
	if err := edit(&next.Profiles[profile].Pages[page]); err != nil {
		m.mu.Unlock()
		return err
	}
	if err := m.configs.Save(next); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("persist configuration: %w", err)
	}
	reloaded, err := m.configs.Load()
	if err != nil {
		log.Printf("Reload after save failed, keeping written copy: %v", err)
		reloaded = next
	}
	m.cfg = reloaded
	m.clampLocked()
	if after != nil {
		if pg := m.pageLocked(profile, page); pg != nil {
			after(pg)
		}
	}
	_, _ = m.commitLocked()
	return nil
}

// Flush retries a persistence write that failed earlier.
func (m *Manager) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.dirty {
		return nil
	}
	return m.persistLocked()
}

// Dirty reports whether the last persistence attempt failed.
func (m *Manager) Dirty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty
}

// commitLocked persists, notifies and unlocks.
func (m *Manager) commitLocked() (Context, error) {
	_ = m.persistLocked()
	ctx := m.contextLocked()
	fn := m.onChange
	m.mu.Unlock()
	if fn != nil {
		fn(ctx)
	}
	return ctx, nil
}

// persistLocked writes the position, retrying once. A failure leaves memory as is
// and marks the state dirty for the next write.
func (m *Manager) persistLocked() error {
	st := PersistedState{
		CurrentProfileIndex: m.profile,
		CurrentPageIndex:    m.page,
		LastUpdated:         m.now().UTC().Format(time.RFC3339),
	}
	err := m.store.Save(st)
	if err != nil {
		log.Printf("Saving navigation state failed, retrying: %v", err)
		err = m.store.Save(st)
	}
	if err != nil {
		log.Printf("Saving navigation state failed again, keeping in memory: %v", err)
		m.dirty = true
		return err
	}
	m.dirty = false
	return nil
}

func (m *Manager) clampLocked() {
	m.profile = core.ClampIndex(m.profile, len(m.cfg.Profiles))
	m.page = core.ClampIndex(m.page, m.pageCountLocked())
}

func (m *Manager) pageCountLocked() int {
	if m.profile < 0 || m.profile >= len(m.cfg.Profiles) {
		return 0
	}
	return len(m.cfg.Profiles[m.profile].Pages)
}

func (m *Manager) pageLocked(profile, page int) *config.Page {
	if profile < 0 || profile >= len(m.cfg.Profiles) {
		return nil
	}
	pages := m.cfg.Profiles[profile].Pages
	if page < 0 || page >= len(pages) {
		return nil
	}
	return &pages[page]
}

func (m *Manager) contextLocked() Context {
	return Derive(m.cfg, m.profile, m.page)
}
