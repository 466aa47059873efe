package core

// Cell is a zero-based grid coordinate.
type Cell struct {
	Row, Col int
}

// MoveCursor steps at by (dr, dc) and clamps the result to a rows x cols grid.
func MoveCursor(at Cell, dr, dc, rows, cols int) Cell {
	if rows < 1 || cols < 1 {
		return Cell{}
	}
	return Cell{
		Row: ClampIndex(at.Row+dr, rows),
		Col: ClampIndex(at.Col+dc, cols),
	}
}

// NextPopulated scans in reading order from at, excluding at itself, for the next
// non-empty label. dir < 0 scans backwards. The scan wraps once around the grid.
func NextPopulated(grid [][]string, at Cell, dir int) (Cell, bool) {
	rows := len(grid)
	if rows == 0 {
		return at, false
	}
	cols := 0
	for _, r := range grid {
		if len(r) > cols {
			cols = len(r)
		}
	}
	if cols == 0 {
		return at, false
	}
	step := 1
	if dir < 0 {
		step = -1
	}
	total := rows * cols
	start := at.Row*cols + at.Col
	for i := 1; i <= total; i++ {
		idx := ((start+step*i)%total + total) % total
		r, c := idx/cols, idx%cols
		if c < len(grid[r]) && grid[r][c] != "" {
			return Cell{Row: r, Col: c}, true
		}
	}
	return at, false
}

// CountPopulated returns the number of non-empty labels.
func CountPopulated(grid [][]string) int {
	n := 0
	for _, r := range grid {
		for _, s := range r {
			if s != "" {
				n++
			}
		}
	}
	return n
}
