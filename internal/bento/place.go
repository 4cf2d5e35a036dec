package bento

import "time"

// Cell is one widget slot. Render draws the widget into w×h characters.
type Cell struct {
	ID      string
	ColSpan int
	RowSpan int
	Render  func(w, h int, fx Transform) string
}

// Placement is a cell's resolved position, in tracks and rows.
type Placement struct {
	Index int
	ID    string
	Col   int
	Row   int
	Cols  int
	Rows  int
	Delay time.Duration
}

// Place auto-places cells in document order using sparse row-major packing:
// each cell goes to the first free slot at or after the end of the previous
// cell, wrapping onto new rows as needed.
func Place(cells []Cell, bp Breakpoint) []Placement {
	tracks := bp.Tracks()
	out := make([]Placement, 0, len(cells))

	var grid occupancy
	row, col := 0, 0
	for i, c := range cells {
		cols, rows := ResolveSpan(bp, c.ColSpan, c.RowSpan)
		cols = min(cols, tracks)

		r, k := row, col
		for {
			if k+cols > tracks {
				r, k = r+1, 0
				continue
			}
			if grid.free(r, k, rows, cols) {
				break
			}
			k++
		}

		grid.fill(r, k, rows, cols)
		out = append(out, Placement{
			Index: i,
			ID:    c.ID,
			Col:   k,
			Row:   r,
			Cols:  cols,
			Rows:  rows,
			Delay: StaggerDelay(i),
		})
		row, col = r, k+cols
	}
	return out
}

// RowCount is the number of grid rows the placements occupy.
func RowCount(ps []Placement) int {
	n := 0
	for _, p := range ps {
		n = max(n, p.Row+p.Rows)
	}
	return n
}

type occupancy [][]bool

func (o *occupancy) free(row, col, rows, cols int) bool {
	for r := row; r < row+rows; r++ {
		if r >= len(*o) {
			continue
		}
		for c := col; c < col+cols; c++ {
			if c < len((*o)[r]) && (*o)[r][c] {
				return false
			}
		}
	}
	return true
}

func (o *occupancy) fill(row, col, rows, cols int) {
	for r := row; r < row+rows; r++ {
		for len(*o) <= r {
			*o = append(*o, nil)
		}
		line := (*o)[r]
		for len(line) < col+cols {
			line = append(line, false)
		}
		for c := col; c < col+cols; c++ {
			line[c] = true
		}
		(*o)[r] = line
	}
}
