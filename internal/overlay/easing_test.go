package overlay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	d := 150 * time.Millisecond
	assert.Equal(t, 0.0, Progress(0, d))
	assert.Equal(t, 0.5, Progress(75*time.Millisecond, d))
	assert.Equal(t, 1.0, Progress(150*time.Millisecond, d))
	assert.Equal(t, 1.0, Progress(400*time.Millisecond, d))
	assert.Equal(t, 1.0, Progress(time.Millisecond, 0))
}

func TestEasingEndpointsAndShape(t *testing.T) {
	for name, ease := range map[string]EaseFunc{"out": EaseOutCubic, "in": EaseInCubic, "linear": Linear} {
		assert.Equal(t, 0.0, ease(0), name)
		assert.Equal(t, 1.0, ease(1), name)
		assert.Equal(t, 1.0, ease(2), name)
		assert.Equal(t, 0.0, ease(-1), name)
	}
	// Ease-out covers most of the distance early, ease-in late.
	assert.Greater(t, EaseOutCubic(0.5), 0.5)
	assert.Less(t, EaseInCubic(0.5), 0.5)
}

func TestInterpolate(t *testing.T) {
	assert.Equal(t, -100.0, Interpolate(-100, 0, 0, EaseOutCubic))
	assert.Equal(t, 0.0, Interpolate(-100, 0, 1, EaseOutCubic))
	assert.InDelta(t, -50.0, Interpolate(-100, 0, 0.5, nil), 1e-9)
	assert.InDelta(t, -12.5, Interpolate(-100, 0, 0.5, EaseOutCubic), 1e-9)

	prev := -100.0
	for i := 1; i <= 10; i++ {
		v := Interpolate(-100, 0, float64(i)/10, EaseOutCubic)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}
