package navigation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidIndex     = errors.New("invalid index")
	ErrNotFound         = errors.New("profile not found")
	ErrAtBoundary       = errors.New("at boundary")
	ErrPersistCorrupted = errors.New("navigation state corrupted")
	ErrNoConfigStore    = errors.New("no config store attached")
)

// IndexError is an out-of-range profile or page index.
type IndexError struct {
	What  string // "profile" or "page"
	Index int
	Count int
}

func (e *IndexError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("%s index %d: no %ss available", e.What, e.Index, e.What)
	}
	return fmt.Sprintf("%s index %d out of range [0, %d)", e.What, e.Index, e.Count)
}

func (e *IndexError) Unwrap() error { return ErrInvalidIndex }

// NotFoundError is a profile name with no exact match.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("no profile named %q", e.Name)
	}
	return fmt.Sprintf("no profile named %q (did you mean %s?)", e.Name, strings.Join(quoteAll(e.Suggestions), ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func quoteAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
