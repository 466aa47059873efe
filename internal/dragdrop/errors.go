package dragdrop

import (
	"errors"
	"fmt"

	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
)

var (
	ErrPositionInvalid         = errors.New("drop position invalid")
	ErrPositionOccupied        = errors.New("drop position occupied")
	ErrClassificationAmbiguous = errors.New("file classification ambiguous")
	ErrNoFiles                 = errors.New("no files dropped")
	ErrNothingToUndo           = errors.New("nothing to undo")
	ErrUndoStale               = errors.New("button changed since it was created")
)

// PositionError explains why a cell cannot take a new button.
type PositionError struct {
	// Position is nil when the pointer did not resolve to any cell.
	Position *config.Position
	Pointer  *Point
	Rows     int
	Cols     int
	Occupant string
	Err      error
}

func (e *PositionError) Error() string {
	bounds := fmt.Sprintf("the %dx%d grid (rows 1-%d, columns 1-%d)", e.Rows, e.Cols, e.Rows, e.Cols)
	switch {
	case errors.Is(e.Err, ErrPositionOccupied) && e.Position != nil:
		return fmt.Sprintf("cell %s is already used by %q", e.Position, e.Occupant)
	case e.Position != nil:
		return fmt.Sprintf("position %s is outside %s", e.Position, bounds)
	case e.Pointer != nil:
		return fmt.Sprintf("drop at (%.0f, %.0f) is not on a cell of %s", e.Pointer.X, e.Pointer.Y, bounds)
	}
	return e.Err.Error()
}

func (e *PositionError) Unwrap() error { return e.Err }
