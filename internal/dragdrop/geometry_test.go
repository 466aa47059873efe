package dragdrop

import (
	"testing"

	"github.com/kino-6/q-deck-launcher-sub002/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestResolveDropPosition(t *testing.T) {
	g := UniformGrid(Point{X: 100, Y: 50}, 2, 3, 40, 30, 10)
	assert.Equal(t, Rect{X: 100, Y: 50, W: 140, H: 70}, g.Bounds)
	assert.Len(t, g.Cells, 6)

	tests := []struct {
		name string
		x, y float64
		want config.Position
		ok   bool
	}{
		{"first cell origin", 100, 50, config.Position{Row: 1, Col: 1}, true},
		{"last cell", 230, 110, config.Position{Row: 2, Col: 3}, true},
		{"column gap", 145, 60, config.Position{}, false},
		{"row gap", 110, 85, config.Position{}, false},
		{"right edge is exclusive", 240, 60, config.Position{}, false},
		{"left of grid", 99.5, 60, config.Position{}, false},
		{"below grid", 110, 500, config.Position{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveDropPosition(tt.x, tt.y, g)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUniformGridEmpty(t *testing.T) {
	g := UniformGrid(Point{}, 0, 4, 10, 10, 0)
	_, ok := ResolveDropPosition(1, 1, g)
	assert.False(t, ok)
}

func TestResolveDropPositionFourBySix(t *testing.T) {
	g := UniformGrid(Point{X: 20, Y: 40}, 4, 6, 100, 80, 8)

	// Cell (2,3) spans x 236-336 and y 128-208.
	got, ok := ResolveDropPosition(250, 150, g)
	assert.True(t, ok)
	assert.Equal(t, config.Position{Row: 2, Col: 3}, got)

	for _, c := range g.Cells {
		got, ok := ResolveDropPosition(c.Box.X+c.Box.W/2, c.Box.Y+c.Box.H/2, g)
		assert.True(t, ok, c.Position.String())
		assert.Equal(t, c.Position, got)
	}
}
