// Package dragdrop turns files dropped on the overlay into persisted buttons.
package dragdrop

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"reflect"

	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
	"github.com/kino-6/q-deck-launcher-sub002/internal/icon"
	"github.com/kino-6/q-deck-launcher-sub002/internal/navigation"
	"github.com/kino-6/q-deck-launcher-sub002/internal/overlay"
)

// ButtonStore is the profile-set writer the pipeline persists through.
type ButtonStore interface {
	Context() navigation.Context
	Page(profile, page int) (config.Page, bool)
	AddButton(profile, page int, b config.Button) (config.Button, error)
	RemoveButton(profile, page int, pos config.Position) (config.Button, error)
}

// IconSource resolves an icon reference for a file.
type IconSource interface {
	Acquire(ctx context.Context, path string, hint icon.Hint) (string, bool)
}

// Notifier shows a short message to the user.
type Notifier interface {
	Warn(title, message string)
}

// Drop is one completed drag-and-drop gesture.
type Drop struct {
	Paths    []string
	Pointer  Point
	Geometry GridGeometry
}

// Result describes the button a drop created.
type Result struct {
	Button    config.Button
	Target    Target
	Operation Operation
	Ignored   []string
}

var getwdFn = os.Getwd

// Pipeline validates, classifies and persists dropped files.
type Pipeline struct {
	store      ButtonStore
	icons      IconSource
	classifier *Classifier
	guard      *overlay.DragGuard
	notifier   Notifier
	history    *History
}

// NewPipeline wires a pipeline. icons, notifier and guard may be nil.
func NewPipeline(store ButtonStore, icons IconSource, classifier *Classifier, guard *overlay.DragGuard, notifier Notifier) *Pipeline {
	if classifier == nil {
		classifier = defaultClassifier
	}
	if guard == nil {
		guard = &overlay.DragGuard{}
	}
	return &Pipeline{
		store:      store,
		icons:      icons,
		classifier: classifier,
		guard:      guard,
		notifier:   notifier,
		history:    NewHistory(MaxHistory),
	}
}

// SetClassifier swaps the executable patterns after a config reload.
func (p *Pipeline) SetClassifier(c *Classifier) {
	if c != nil {
		p.classifier = c
	}
}

func (p *Pipeline) History() *History { return p.history }

// DragEnter marks a drag in progress so the overlay will not auto-hide under it.
func (p *Pipeline) DragEnter() { p.guard.Apply(overlay.DragEnter) }

// DragLeave ends a drag that left the window without dropping.
func (p *Pipeline) DragLeave() { p.guard.Apply(overlay.DragLeave) }

// DragCancel ends a drag that was aborted.
func (p *Pipeline) DragCancel() { p.guard.Apply(overlay.DragCancel) }

// AcquireIcon never fails: it falls back to a generic emoji. It is safe to call
// from any goroutine.
func (p *Pipeline) AcquireIcon(ctx context.Context, path string, isExecutable bool) string {
	if p.icons != nil {
		if ref, ok := p.icons.Acquire(ctx, path, icon.Hint{IsExecutable: isExecutable}); ok {
			return ref
		}
	}
	if isExecutable {
		return icon.ExecutableEmoji
	}
	return icon.DocumentEmoji
}

// Placement is a validated drop that still needs its icon before it is committed.
type Placement struct {
	Path         string
	IsExecutable bool
	Button       config.Button
	Target       Target
	Ignored      []string
}

// Result is the outcome reported for a placement that never got committed.
func (pl Placement) Result() Result {
	return Result{Target: pl.Target, Ignored: pl.Ignored}
}

// HandleDrop creates a button for the first dropped file at the cell under the pointer.
// The drag flag is cleared whatever the outcome.
func (p *Pipeline) HandleDrop(ctx context.Context, d Drop) (Result, error) {
	pl, err := p.Place(d)
	if err != nil {
		return pl.Result(), err
	}
	return p.Commit(pl, p.AcquireIcon(ctx, pl.Path, pl.IsExecutable))
}

// Place resolves the drop target and classifies the first file without touching
// the disk beyond a stat. On success the drag stays active until Commit or Abort.
func (p *Pipeline) Place(d Drop) (Placement, error) {
	if len(d.Paths) == 0 {
		p.guard.End(overlay.DragDrop)
		return Placement{}, ErrNoFiles
	}
	nav := p.store.Context()
	target := Target{Profile: nav.ProfileIndex, Page: nav.PageIndex}
	ignored := d.Paths[1:]
	if len(ignored) > 0 {
		log.Printf("Drop carried %d files, using %s and ignoring the rest", len(d.Paths), d.Paths[0])
	}

	pos, ok := ResolveDropPosition(d.Pointer.X, d.Pointer.Y, d.Geometry)
	if !ok {
		p.guard.End(overlay.DragDrop)
		pointer := d.Pointer
		err := &PositionError{Pointer: &pointer, Rows: d.Geometry.Rows, Cols: d.Geometry.Cols, Err: ErrPositionInvalid}
		p.warn("Drop outside grid", err)
		return Placement{Target: target, Ignored: ignored}, err
	}

	pl, err := p.place(d.Paths[0], pos, target)
	pl.Target, pl.Ignored = target, ignored
	if err != nil {
		p.guard.End(overlay.DragDrop)
		p.warnCreate(err)
		return pl, err
	}
	return pl, nil
}

// Commit persists a placement with its icon and ends the drag.
func (p *Pipeline) Commit(pl Placement, iconRef string) (Result, error) {
	defer p.guard.End(overlay.DragDrop)
	res := pl.Result()
	b, op, err := p.commit(pl, iconRef)
	if err != nil {
		p.warnCreate(err)
		return res, err
	}
	res.Button, res.Operation = b, op
	return res, nil
}

// Abort ends the drag for a placement that will not be committed.
func (p *Pipeline) Abort(Placement) { p.guard.End(overlay.DragDrop) }

// CreateButton validates pos against the target page, classifies the file and persists
// the new button. Position checks run before any file inspection.
func (p *Pipeline) CreateButton(ctx context.Context, path string, pos config.Position, target Target) (config.Button, error) {
	pl, err := p.place(path, pos, target)
	if err != nil {
		return config.Button{}, err
	}
	pl.Target = target
	b, _, err := p.commit(pl, p.AcquireIcon(ctx, pl.Path, pl.IsExecutable))
	return b, err
}

func (p *Pipeline) place(path string, pos config.Position, target Target) (Placement, error) {
	page, ok := p.store.Page(target.Profile, target.Page)
	if !ok {
		return Placement{}, fmt.Errorf("%w: no page %d in profile %d", ErrPositionInvalid, target.Page, target.Profile)
	}
	if !page.InBounds(pos) {
		return Placement{}, p.positionError(page, pos, "", ErrPositionInvalid)
	}
	if existing, taken := page.ButtonAt(pos); taken {
		return Placement{}, p.positionError(page, pos, existing.Label, ErrPositionOccupied)
	}

	cwd, _ := getwdFn()
	abs := NormalizePath(path, cwd)
	class, err := p.classifier.Classify(abs)
	if err != nil {
		return Placement{}, err
	}
	return Placement{
		Path:         abs,
		IsExecutable: class.IsExecutable,
		Button: config.Button{
			Position:   pos,
			ActionType: class.ActionType,
			Label:      DeriveLabel(abs),
			Config:     BuildActionConfig(abs, class),
		},
	}, nil
}

// commit rechecks the cell, which may have been filled while the icon was loading.
func (p *Pipeline) commit(pl Placement, iconRef string) (config.Button, Operation, error) {
	target, pos := pl.Target, pl.Button.Position
	page, ok := p.store.Page(target.Profile, target.Page)
	if !ok {
		return config.Button{}, Operation{}, fmt.Errorf("%w: no page %d in profile %d", ErrPositionInvalid, target.Page, target.Profile)
	}
	b := pl.Button
	b.Icon = iconRef
	created, err := p.store.AddButton(target.Profile, target.Page, b)
	switch {
	case errors.Is(err, navigation.ErrCellOccupied):
		occupant, _ := page.ButtonAt(pos)
		return config.Button{}, Operation{}, p.positionError(page, pos, occupant.Label, ErrPositionOccupied)
	case errors.Is(err, navigation.ErrCellOutOfBounds):
		return config.Button{}, Operation{}, p.positionError(page, pos, "", ErrPositionInvalid)
	case err != nil:
		return config.Button{}, Operation{}, err
	}
	op := p.history.Record(target, created)
	log.Printf("Created %s button %q at %s from %s", created.ActionType, created.Label, pos, pl.Path)
	return created, op, nil
}

// UndoLast removes the most recently created button. An entry whose cell now holds
// a different button is discarded with ErrUndoStale and nothing is removed.
func (p *Pipeline) UndoLast() (Operation, error) {
	op, ok := p.history.Pop()
	if !ok {
		return Operation{}, ErrNothingToUndo
	}
	page, ok := p.store.Page(op.Target.Profile, op.Target.Page)
	if !ok {
		return op, fmt.Errorf("undo %s: %w", op.ID, ErrUndoStale)
	}
	current, ok := page.ButtonAt(op.Button.Position)
	if !ok {
		return op, fmt.Errorf("undo %s: %w", op.ID, navigation.ErrNoButton)
	}
	if !sameButton(current, op.Button) {
		log.Printf("Undo skipped: %s now holds %q instead of %q", op.Button.Position, current.Label, op.Button.Label)
		return op, fmt.Errorf("undo %s: %w", op.ID, ErrUndoStale)
	}
	if _, err := p.store.RemoveButton(op.Target.Profile, op.Target.Page, op.Button.Position); err != nil {
		if !errors.Is(err, navigation.ErrNoButton) {
			p.history.Push(op)
		}
		return op, fmt.Errorf("undo %s: %w", op.ID, err)
	}
	log.Printf("Undid button %q at %s", op.Button.Label, op.Button.Position)
	return op, nil
}

func sameButton(a, b config.Button) bool {
	return a.Label == b.Label && a.ActionType == b.ActionType && reflect.DeepEqual(a.Config, b.Config)
}

func (p *Pipeline) positionError(page config.Page, pos config.Position, occupant string, err error) error {
	return &PositionError{Position: &pos, Rows: page.Rows, Cols: page.Cols, Occupant: occupant, Err: err}
}

func (p *Pipeline) warnCreate(err error) {
	if errors.Is(err, ErrPositionInvalid) || errors.Is(err, ErrPositionOccupied) {
		p.warn("Cannot place button", err)
	} else {
		p.warn("Cannot add button", err)
	}
}

func (p *Pipeline) warn(title string, err error) {
	log.Printf("%s: %v", title, err)
	if p.notifier != nil {
		p.notifier.Warn(title, err.Error())
	}
}
