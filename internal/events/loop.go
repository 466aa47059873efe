package events

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// ErrLoopStopped is returned by Run when Stop was called.
var ErrLoopStopped = errors.New("event loop stopped")

// Loop runs posted closures one at a time on a single goroutine.
type Loop struct {
	mu       sync.Mutex
	pending  []func()
	wake     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
}

// NewLoop creates a loop with room for size pending closures before the queue grows.
func NewLoop(size int) *Loop {
	if size < 1 {
		size = 1
	}
	return &Loop{
		pending: make([]func(), 0, size),
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}
}

// Post queues fn and returns false once the loop stopped. It never blocks, so
// closures running on the loop may post to it.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.stop:
		return false
	default:
	}
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

func (l *Loop) take() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	batch := l.pending
	l.pending = nil
	return batch
}

// Run executes closures until ctx is done or Stop is called. A panicking closure is
// logged and the loop keeps going.
func (l *Loop) Run(ctx context.Context) error {
	l.running.Store(true)
	defer l.running.Store(false)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return ErrLoopStopped
		case <-l.wake:
			for _, fn := range l.take() {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-l.stop:
					return ErrLoopStopped
				default:
				}
				l.exec(fn)
			}
		}
	}
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("event loop: recovered panic: %v", r)
		}
	}()
	fn()
}

// Stop ends Run. Pending closures are dropped.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Running reports whether Run is active.
func (l *Loop) Running() bool { return l.running.Load() }

// Call posts fn and waits for it to finish. It must not be called from the loop itself.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return ErrLoopStopped
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stop:
		return ErrLoopStopped
	}
}

func (l *Loop) Now() time.Time { return time.Now() }

// AfterFunc runs fn on the loop after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			// Stop may have raced with the post; the flag is authoritative.
			if t.fired.CompareAndSwap(false, true) {
				fn()
			}
		})
	})
	return t
}

type loopTimer struct {
	timer *time.Timer
	fired atomic.Bool
}

func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	return t.fired.CompareAndSwap(false, true)
}
