package overlay

import "time"

// EaseFunc maps linear progress in [0,1] to eased progress in [0,1].
type EaseFunc func(p float64) float64

// EaseOutCubic decelerates into the resting position.
func EaseOutCubic(p float64) float64 {
	p = clamp01(p)
	q := 1 - p
	return 1 - q*q*q
}

// EaseInCubic accelerates away from the resting position.
func EaseInCubic(p float64) float64 {
	p = clamp01(p)
	return p * p * p
}

func Linear(p float64) float64 { return clamp01(p) }

// Progress is min(elapsed/duration, 1). A non-positive duration is already complete.
func Progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return clamp01(float64(elapsed) / float64(duration))
}

// Interpolate returns the offset between from and to at progress under ease.
func Interpolate(from, to, progress float64, ease EaseFunc) float64 {
	if ease == nil {
		ease = Linear
	}
	p := clamp01(progress)
	if p == 1 {
		return to
	}
	return from + (to-from)*ease(p)
}

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
