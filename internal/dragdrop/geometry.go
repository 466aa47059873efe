package dragdrop

import "github.com/kino-6/q-deck-launcher-sub002/internal/config"

// Point is a pointer position in the host's coordinate space.
type Point struct {
	X, Y float64
}

// Rect is a half-open box: [X, X+W) x [Y, Y+H).
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Cell is one grid cell's box.
type Cell struct {
	Position config.Position
	Box      Rect
}

// GridGeometry is the rendered layout of a page.
type GridGeometry struct {
	Rows, Cols int
	Bounds     Rect
	Cells      []Cell
}

// UniformGrid lays out rows x cols equal cells starting at origin, separated by gap.
func UniformGrid(origin Point, rows, cols int, cellW, cellH, gap float64) GridGeometry {
	g := GridGeometry{Rows: rows, Cols: cols}
	if rows < 1 || cols < 1 {
		return g
	}
	g.Bounds = Rect{
		X: origin.X,
		Y: origin.Y,
		W: float64(cols)*cellW + float64(cols-1)*gap,
		H: float64(rows)*cellH + float64(rows-1)*gap,
	}
	g.Cells = make([]Cell, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.Cells = append(g.Cells, Cell{
				Position: config.Position{Row: r + 1, Col: c + 1},
				Box: Rect{
					X: origin.X + float64(c)*(cellW+gap),
					Y: origin.Y + float64(r)*(cellH+gap),
					W: cellW,
					H: cellH,
				},
			})
		}
	}
	return g
}

// ResolveDropPosition returns the cell under (x, y). It reports false outside the
// grid and inside the gaps between cells.
func ResolveDropPosition(x, y float64, g GridGeometry) (config.Position, bool) {
	if !g.Bounds.Contains(x, y) {
		return config.Position{}, false
	}
	for _, c := range g.Cells {
		if c.Box.Contains(x, y) {
			return c.Position, true
		}
	}
	return config.Position{}, false
}
