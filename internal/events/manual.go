package events

import (
	"sort"
	"sync"
	"time"
)

// ManualScheduler is a virtual clock. Callbacks run only inside Advance, in due order,
// on the caller's goroutine.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*manualTimer
}

func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

func (s *ManualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &manualTimer{s: s, due: s.now.Add(d), seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every callback that falls due,
// including ones scheduled by callbacks during the advance.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		t := s.popDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
}

// RunUntilIdle advances until no timers are pending or limit elapses.
func (s *ManualScheduler) RunUntilIdle(limit time.Duration) {
	deadline := s.Now().Add(limit)
	for s.Pending() > 0 {
		next, ok := s.nextDue()
		if !ok || next.After(deadline) {
			return
		}
		s.Advance(next.Sub(s.Now()))
	}
}

// Pending counts timers that have not fired or been stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *ManualScheduler) nextDue() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.timers) == 0 {
		return time.Time{}, false
	}
	s.sortLocked()
	return s.timers[0].due, true
}

func (s *ManualScheduler) popDue(target time.Time) *manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.timers) == 0 {
		return nil
	}
	s.sortLocked()
	t := s.timers[0]
	if t.due.After(target) {
		return nil
	}
	s.timers = s.timers[1:]
	if t.due.After(s.now) {
		s.now = t.due
	}
	return t
}

func (s *ManualScheduler) sortLocked() {
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].due.Equal(s.timers[j].due) {
			return s.timers[i].seq < s.timers[j].seq
		}
		return s.timers[i].due.Before(s.timers[j].due)
	})
}

func (s *ManualScheduler) remove(t *manualTimer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, other := range s.timers {
		if other == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

type manualTimer struct {
	s   *ManualScheduler
	due time.Time
	seq int
	fn  func()
}

func (t *manualTimer) Stop() bool { return t.s.remove(t) }
