// Package events provides the single serial loop the engine runs on, the timer
// abstraction driven by it, and a typed message bus.
package events

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already ran or was stopped.
	Stop() bool
}

// Scheduler supplies time and deferred callbacks. Callbacks run on the scheduler's loop,
// never concurrently with each other.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}
