// Package overlay drives the overlay panel's visibility: the animated
// Hidden/AnimatingIn/Visible/AnimatingOut state machine and focus-loss auto-hide.
package overlay

import (
	"log"
	"math"
	"time"

	"github.com/kino-6/q-deck-launcher-sub002/internal/events"
)

// Host is the surface the controller moves.
type Host interface {
	// Alive reports whether the surface still exists.
	Alive() bool
	SetVisible(visible bool)
	// SetOffset moves the panel's top edge; the resting position is Options.RestOffset.
	SetOffset(offset float64)
	PanelHeight() float64
}

type Options struct {
	Animate       bool
	Duration      time.Duration
	FrameInterval time.Duration
	RestOffset    float64

	AutoHide      bool
	AutoHideGrace time.Duration
}

func DefaultOptions() Options {
	return Options{
		Animate:       true,
		Duration:      150 * time.Millisecond,
		FrameInterval: 16 * time.Millisecond,
		AutoHide:      true,
		AutoHideGrace: 150 * time.Millisecond,
	}
}

// ChangeFunc observes state and offset changes.
type ChangeFunc func(state State, offset float64)

// Controller owns the overlay's visual state. It is not safe for concurrent use:
// every method, like every timer callback, runs on the scheduler's loop.
type Controller struct {
	host  Host
	sched events.Scheduler
	opts  Options
	drag  *DragGuard

	state  State
	offset float64

	// in-flight animation
	gen       uint64
	frame     events.Timer
	startedAt time.Time
	from, to  float64
	duration  time.Duration
	ease      EaseFunc

	// queued toggle applied when the running animation completes
	pendingToggle bool

	modalOpen   bool
	hideTimer   events.Timer
	interaction uint64

	onChange ChangeFunc
}

// NewController starts Hidden, with the panel parked off-screen.
func NewController(host Host, sched events.Scheduler, opts Options, drag *DragGuard) *Controller {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = 16 * time.Millisecond
	}
	if drag == nil {
		drag = &DragGuard{}
	}
	c := &Controller{host: host, sched: sched, opts: opts, drag: drag}
	c.offset = c.hiddenOffset()
	return c
}

func (c *Controller) OnChange(fn ChangeFunc) { c.onChange = fn }

func (c *Controller) State() State { return c.state }

func (c *Controller) Offset() float64 { return c.offset }

func (c *Controller) DragGuard() *DragGuard { return c.drag }

// SetOptions replaces timing options; an in-flight animation keeps its old timing.
func (c *Controller) SetOptions(opts Options) {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = c.opts.FrameInterval
	}
	c.opts = opts
}

func (c *Controller) hiddenOffset() float64 {
	h := 0.0
	if c.host != nil {
		h = c.host.PanelHeight()
	}
	return c.opts.RestOffset - h
}

// Show slides the panel in. It is a no-op while Visible or AnimatingIn and reverses
// a running hide.
func (c *Controller) Show() {
	c.pendingToggle = false
	if !c.host.Alive() {
		c.abort("show")
		return
	}
	switch c.state {
	case Visible, AnimatingIn:
		return
	case Hidden:
		c.offset = c.hiddenOffset()
		c.host.SetOffset(c.offset)
		c.host.SetVisible(true)
	}
	c.transition(AnimatingIn, c.offset, c.opts.RestOffset, EaseOutCubic)
}

// Hide slides the panel out. It is a no-op while Hidden or AnimatingOut and reverses
// a running show.
func (c *Controller) Hide() {
	c.pendingToggle = false
	c.cancelAutoHide()
	if c.state == Hidden || c.state == AnimatingOut {
		return
	}
	if !c.host.Alive() {
		c.abort("hide")
		return
	}
	c.transition(AnimatingOut, c.offset, c.hiddenOffset(), EaseInCubic)
}

// Toggle shows from Hidden and hides from Visible. During an animation it flips a
// pending request that runs once the animation completes; two toggles cancel out.
func (c *Controller) Toggle() {
	switch c.state {
	case Hidden:
		c.Show()
	case Visible:
		c.Hide()
	default:
		c.pendingToggle = !c.pendingToggle
	}
}

func (c *Controller) transition(next State, from, to float64, ease EaseFunc) {
	c.stopFrame()
	c.gen++

	if !c.opts.Animate {
		c.offset = to
		c.host.SetOffset(to)
		c.state = next
		c.complete()
		return
	}

	c.state = next
	c.from, c.to, c.ease = from, to, ease
	c.startedAt = c.sched.Now()
	c.duration = c.scaledDuration(from, to)
	c.notify()
	c.scheduleFrame(c.gen)
}

// scaledDuration keeps the slide speed constant when starting mid-way.
func (c *Controller) scaledDuration(from, to float64) time.Duration {
	full := math.Abs(c.opts.RestOffset - c.hiddenOffset())
	if full == 0 {
		return 0
	}
	frac := math.Abs(to-from) / full
	if frac > 1 {
		frac = 1
	}
	return time.Duration(float64(c.opts.Duration) * frac)
}

func (c *Controller) scheduleFrame(gen uint64) {
	delay := c.opts.FrameInterval
	remaining := c.duration - c.sched.Now().Sub(c.startedAt)
	if remaining < delay {
		delay = remaining
	}
	if delay < 0 {
		delay = 0
	}
	c.frame = c.sched.AfterFunc(delay, func() { c.step(gen) })
}

func (c *Controller) step(gen uint64) {
	if gen != c.gen {
		return
	}
	c.frame = nil
	if !c.host.Alive() {
		c.abort("frame")
		return
	}
	p := Progress(c.sched.Now().Sub(c.startedAt), c.duration)
	c.offset = Interpolate(c.from, c.to, p, c.ease)
	c.host.SetOffset(c.offset)
	if p >= 1 {
		c.complete()
		return
	}
	c.notify()
	c.scheduleFrame(gen)
}

func (c *Controller) complete() {
	switch c.state {
	case AnimatingIn:
		c.state = Visible
	case AnimatingOut:
		c.state = Hidden
		c.host.SetVisible(false)
	}
	c.notify()
	if c.pendingToggle {
		c.pendingToggle = false
		c.Toggle()
	}
}

// abort drops the animation because the host went away.
func (c *Controller) abort(where string) {
	c.stopFrame()
	c.gen++
	c.cancelAutoHide()
	if c.state != Hidden {
		log.Printf("Overlay host gone during %s, dropping to Hidden", where)
	}
	c.state = Hidden
	c.pendingToggle = false
	c.notify()
}

func (c *Controller) stopFrame() {
	if c.frame != nil {
		c.frame.Stop()
		c.frame = nil
	}
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange(c.state, c.offset)
	}
}

// FocusLost arms the auto-hide timer. The hide runs after the grace delay unless a
// modal opens, a drag starts or any interaction arrives first.
func (c *Controller) FocusLost() {
	if !c.opts.AutoHide || c.state == Hidden || c.state == AnimatingOut {
		return
	}
	if c.modalOpen {
		log.Printf("Focus lost with a modal open, keeping overlay")
		return
	}
	if c.drag.Active() {
		log.Printf("Focus lost during drag, keeping overlay")
		return
	}
	c.cancelAutoHide()
	c.interaction++
	gen := c.interaction
	epoch := c.drag.Epoch()
	c.hideTimer = c.sched.AfterFunc(c.opts.AutoHideGrace, func() { c.autoHide(gen, epoch) })
}

func (c *Controller) autoHide(gen, epoch uint64) {
	if gen != c.interaction {
		return
	}
	c.hideTimer = nil
	switch {
	case c.modalOpen:
		log.Printf("Auto-hide cancelled: modal open")
	case c.drag.Active() || c.drag.Epoch() != epoch:
		log.Printf("Auto-hide cancelled: drag seen during grace period")
	default:
		c.Hide()
	}
}

// Interaction records user activity on the overlay, cancelling any pending auto-hide.
func (c *Controller) Interaction() {
	c.interaction++
	c.cancelAutoHide()
}

// FocusGained is an interaction.
func (c *Controller) FocusGained() { c.Interaction() }

// SetModalOpen marks a dialog as open or closed. Opening one cancels a pending auto-hide.
func (c *Controller) SetModalOpen(open bool) {
	c.modalOpen = open
	if open {
		c.cancelAutoHide()
	}
}

// AutoHidePending reports whether a focus-loss hide is armed.
func (c *Controller) AutoHidePending() bool { return c.hideTimer != nil }

func (c *Controller) cancelAutoHide() {
	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
}
