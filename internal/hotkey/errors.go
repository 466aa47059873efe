package hotkey

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCombination = errors.New("invalid key combination")
	ErrDuplicateBinding   = errors.New("duplicate hotkey binding")
	ErrRegistrationFailed = errors.New("hotkey registration failed")
	ErrClosed             = errors.New("hotkey manager closed")
)

// BindingError reports a failed registration together with the binding that caused it.
type BindingError struct {
	Combination string
	Purpose     Purpose
	// Existing is the purpose already holding the combination on ErrDuplicateBinding.
	Existing *Purpose
	Err      error
}

func (e *BindingError) Error() string {
	if e.Existing != nil {
		return fmt.Sprintf("hotkey %s for %s: already bound to %s: %v", e.Combination, e.Purpose, *e.Existing, e.Err)
	}
	return fmt.Sprintf("hotkey %s for %s: %v", e.Combination, e.Purpose, e.Err)
}

func (e *BindingError) Unwrap() error { return e.Err }
