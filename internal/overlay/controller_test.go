package overlay

import (
	"testing"
	"time"

	"github.com/kino-6/q-deck-launcher-sub002/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	alive   bool
	visible bool
	height  float64
	offsets []float64
	calls   int
}

func newFakeHost() *fakeHost { return &fakeHost{alive: true, height: 100} }

func (h *fakeHost) Alive() bool { return h.alive }

func (h *fakeHost) SetVisible(v bool) {
	h.calls++
	h.visible = v
}

func (h *fakeHost) SetOffset(o float64) {
	h.calls++
	h.offsets = append(h.offsets, o)
}

func (h *fakeHost) PanelHeight() float64 { return h.height }

func (h *fakeHost) last() float64 { return h.offsets[len(h.offsets)-1] }

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestController(opts Options) (*Controller, *fakeHost, *events.ManualScheduler) {
	host := newFakeHost()
	sched := events.NewManualScheduler(t0)
	return NewController(host, sched, opts, &DragGuard{}), host, sched
}

func TestToggleRoundTrip(t *testing.T) {
	c, host, sched := newTestController(DefaultOptions())
	var states []State
	c.OnChange(func(s State, _ float64) {
		if len(states) == 0 || states[len(states)-1] != s {
			states = append(states, s)
		}
	})

	c.Toggle()
	assert.Equal(t, AnimatingIn, c.State())
	assert.True(t, host.visible)
	assert.Equal(t, -100.0, host.offsets[0])

	sched.Advance(149 * time.Millisecond)
	assert.Equal(t, AnimatingIn, c.State())
	sched.Advance(time.Millisecond)
	assert.Equal(t, Visible, c.State())
	assert.Equal(t, 0.0, host.last())

	c.Toggle()
	assert.Equal(t, AnimatingOut, c.State())
	sched.Advance(150 * time.Millisecond)
	assert.Equal(t, Hidden, c.State())
	assert.False(t, host.visible)
	assert.Equal(t, -100.0, host.last())

	assert.Equal(t, []State{AnimatingIn, Visible, AnimatingOut, Hidden}, states)
	assert.Zero(t, sched.Pending())
}

func TestShowOffsetsAreMonotonic(t *testing.T) {
	c, host, sched := newTestController(DefaultOptions())
	c.Show()
	sched.Advance(200 * time.Millisecond)

	require.Greater(t, len(host.offsets), 5)
	for i := 1; i < len(host.offsets); i++ {
		assert.GreaterOrEqual(t, host.offsets[i], host.offsets[i-1])
	}
	// Roughly one frame per 16ms plus the initial park.
	assert.LessOrEqual(t, len(host.offsets), 12)
}

func TestHideWhileHiddenIsNoop(t *testing.T) {
	c, host, sched := newTestController(DefaultOptions())
	c.Hide()
	assert.Equal(t, Hidden, c.State())
	assert.Zero(t, host.calls)
	assert.Zero(t, sched.Pending())
}

func TestShowIsNoopWhileShowing(t *testing.T) {
	c, _, sched := newTestController(DefaultOptions())
	c.Show()
	sched.Advance(50 * time.Millisecond)
	c.Show()
	sched.Advance(100 * time.Millisecond)
	assert.Equal(t, Visible, c.State())
}

func TestAnimationDisabledIsImmediate(t *testing.T) {
	opts := DefaultOptions()
	opts.Animate = false
	c, host, sched := newTestController(opts)

	c.Show()
	assert.Equal(t, Visible, c.State())
	assert.Equal(t, 0.0, host.last())
	assert.Zero(t, sched.Pending())

	c.Hide()
	assert.Equal(t, Hidden, c.State())
	assert.False(t, host.visible)
}

func TestHideMidShowReverses(t *testing.T) {
	c, host, sched := newTestController(DefaultOptions())
	c.Show()
	sched.Advance(64 * time.Millisecond)
	mid := c.Offset()
	require.Greater(t, mid, -100.0)

	c.Hide()
	assert.Equal(t, AnimatingOut, c.State())
	// Reversal starts where the panel is, not from the resting position.
	sched.Advance(16 * time.Millisecond)
	assert.Less(t, host.last(), mid)

	// The return trip is shorter than a full slide.
	sched.Advance(134 * time.Millisecond)
	assert.Equal(t, Hidden, c.State())
}

func TestShowMidHideReverses(t *testing.T) {
	c, _, sched := newTestController(DefaultOptions())
	c.Show()
	sched.Advance(150 * time.Millisecond)
	c.Hide()
	sched.Advance(32 * time.Millisecond)
	c.Show()
	assert.Equal(t, AnimatingIn, c.State())
	sched.Advance(150 * time.Millisecond)
	assert.Equal(t, Visible, c.State())
	assert.Equal(t, 0.0, c.Offset())
}

func TestToggleDuringAnimationIsQueued(t *testing.T) {
	c, _, sched := newTestController(DefaultOptions())
	c.Toggle()
	sched.Advance(48 * time.Millisecond)
	c.Toggle()
	assert.Equal(t, AnimatingIn, c.State(), "toggle mid-animation must not stack a reversal")

	sched.Advance(102 * time.Millisecond)
	assert.Equal(t, AnimatingOut, c.State(), "queued toggle runs once Visible is reached")
	sched.Advance(150 * time.Millisecond)
	assert.Equal(t, Hidden, c.State())
}

func TestDoubleToggleDuringAnimationCancels(t *testing.T) {
	c, _, sched := newTestController(DefaultOptions())
	c.Toggle()
	c.Toggle()
	c.Toggle()
	sched.Advance(300 * time.Millisecond)
	assert.Equal(t, Visible, c.State())
}

func TestHostDestroyedMidAnimation(t *testing.T) {
	c, host, sched := newTestController(DefaultOptions())
	c.Show()
	sched.Advance(40 * time.Millisecond)
	host.alive = false

	assert.NotPanics(t, func() { sched.Advance(200 * time.Millisecond) })
	assert.Equal(t, Hidden, c.State())
	assert.Zero(t, sched.Pending())
}

func TestShowWithDeadHost(t *testing.T) {
	c, host, sched := newTestController(DefaultOptions())
	host.alive = false
	c.Show()
	assert.Equal(t, Hidden, c.State())
	assert.Zero(t, sched.Pending())
}

func visibleController(t *testing.T) (*Controller, *events.ManualScheduler) {
	t.Helper()
	c, _, sched := newTestController(DefaultOptions())
	c.Show()
	sched.Advance(150 * time.Millisecond)
	require.Equal(t, Visible, c.State())
	return c, sched
}

func TestAutoHideRunsAfterGrace(t *testing.T) {
	c, sched := visibleController(t)
	c.FocusLost()
	assert.True(t, c.AutoHidePending())

	sched.Advance(149 * time.Millisecond)
	assert.Equal(t, Visible, c.State())
	sched.Advance(time.Millisecond)
	assert.Equal(t, AnimatingOut, c.State())
	sched.Advance(150 * time.Millisecond)
	assert.Equal(t, Hidden, c.State())
}

func TestAutoHideCancelledByDragDuringGrace(t *testing.T) {
	c, sched := visibleController(t)
	c.FocusLost()

	sched.Advance(50 * time.Millisecond)
	c.DragGuard().Begin()
	sched.Advance(20 * time.Millisecond)
	c.DragGuard().End(DragLeave)

	sched.Advance(500 * time.Millisecond)
	assert.Equal(t, Visible, c.State())
	assert.False(t, c.AutoHidePending())
}

func TestAutoHideNotArmedWhileDragging(t *testing.T) {
	c, sched := visibleController(t)
	c.DragGuard().Begin()
	c.FocusLost()
	assert.False(t, c.AutoHidePending())
	sched.Advance(time.Second)
	assert.Equal(t, Visible, c.State())
}

func TestAutoHideCancelledByModal(t *testing.T) {
	c, sched := visibleController(t)
	c.SetModalOpen(true)
	c.FocusLost()
	sched.Advance(time.Second)
	assert.Equal(t, Visible, c.State())

	c.SetModalOpen(false)
	c.FocusLost()
	c.SetModalOpen(true)
	sched.Advance(time.Second)
	assert.Equal(t, Visible, c.State())
}

func TestAutoHideCancelledByInteraction(t *testing.T) {
	c, sched := visibleController(t)
	c.FocusLost()
	sched.Advance(100 * time.Millisecond)
	c.FocusGained()
	sched.Advance(time.Second)
	assert.Equal(t, Visible, c.State())
}

func TestAutoHideRearmRestartsGrace(t *testing.T) {
	c, sched := visibleController(t)
	c.FocusLost()
	sched.Advance(100 * time.Millisecond)
	c.FocusLost()
	sched.Advance(100 * time.Millisecond)
	assert.Equal(t, Visible, c.State())
	sched.Advance(50 * time.Millisecond)
	assert.Equal(t, AnimatingOut, c.State())
}

func TestAutoHideDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.AutoHide = false
	c, _, sched := newTestController(opts)
	c.Show()
	sched.Advance(150 * time.Millisecond)
	c.FocusLost()
	sched.Advance(time.Second)
	assert.Equal(t, Visible, c.State())
}
