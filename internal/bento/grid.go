package bento

import (
	"math"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
)

// Rect is a cell's area in characters.
type Rect struct {
	X, Y int
	W, H int
}

// Viewport is the visible band of rows.
type Viewport struct {
	Top    int
	Height int
}

// Intersects reports whether any row of r lies inside the viewport.
func Intersects(r Rect, vp Viewport) bool {
	if r.H <= 0 || vp.Height <= 0 {
		return false
	}
	return r.Y < vp.Top+vp.Height && r.Y+r.H > vp.Top
}

// Grid converts placements into character geometry.
type Grid struct {
	Breakpoints Breakpoints
	Gutter      int // columns between tracks
	RowGap      int // lines between rows
	RowHeight   int // lines per grid row
}

func DefaultGrid() Grid {
	return Grid{
		Breakpoints: DefaultBreakpoints,
		Gutter:      2,
		RowGap:      1,
		RowHeight:   9,
	}
}

// Layout places cells for a terminal of the given width.
func (g Grid) Layout(cells []Cell, width int) []Placement {
	return Place(cells, g.Breakpoints.For(width))
}

// Rect is the character area of p when the grid is width columns wide.
func (g Grid) Rect(p Placement, bp Breakpoint, width int) Rect {
	tracks := bp.Tracks()
	x0 := g.trackStart(p.Col, tracks, width)
	x1 := g.trackStart(p.Col+p.Cols, tracks, width)
	return Rect{
		X: x0,
		Y: p.Row * (g.RowHeight + g.RowGap),
		W: max(x1-x0-g.Gutter, 0),
		H: p.Rows*g.RowHeight + (p.Rows-1)*g.RowGap,
	}
}

// Height is the number of lines the placements need.
func (g Grid) Height(ps []Placement) int {
	rows := RowCount(ps)
	if rows == 0 {
		return 0
	}
	return rows*(g.RowHeight+g.RowGap) - g.RowGap
}

// trackStart is the x offset of a track edge. Track edges are spread over
// width plus one trailing gutter so the last track ends flush with width.
func (g Grid) trackStart(col, tracks, width int) int {
	if tracks <= 0 {
		return 0
	}
	return col * (width + g.Gutter) / tracks
}

// Frame is one rendered layout pass.
type Frame struct {
	Breakpoint Breakpoint
	Placements []Placement
	Visible    []int // indexes of placements that intersect the viewport
	Height     int   // total content height in lines
	View       string
}

// Render lays out and draws cells. elapsed is the time since the layout was
// first shown and drives each cell's entrance transform.
func (g Grid) Render(cells []Cell, width int, vp Viewport, elapsed time.Duration) Frame {
	bp := g.Breakpoints.For(width)
	ps := Place(cells, bp)
	f := Frame{
		Breakpoint: bp,
		Placements: ps,
		Height:     g.Height(ps),
	}
	if width <= 0 || vp.Height <= 0 {
		return f
	}

	blank := strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", width)+"\n", vp.Height), "\n")
	canvas := lipgloss.NewCanvas(lipgloss.NewLayer(blank))

	for _, p := range ps {
		r := g.Rect(p, bp, width)
		if !Intersects(r, vp) {
			continue
		}
		f.Visible = append(f.Visible, p.Index)

		render := cells[p.Index].Render
		if render == nil || r.W <= 0 {
			continue
		}
		fx := Entrance(p.Index, elapsed)
		if fx.Opacity <= 0 {
			continue
		}

		w := scaled(r.W, fx.Scale)
		h := scaled(r.H, fx.Scale)
		x := r.X + (r.W-w)/2
		y := r.Y + (r.H-h)/2 + fx.Rise

		content := render(w, h, fx)
		layer, ok := clip(content, y, vp)
		if !ok {
			continue
		}
		canvas.AddLayers(layer.X(x).Z(1))
	}

	f.View = canvas.Render()
	return f
}

func scaled(n int, s float64) int {
	if s >= 1 {
		return n
	}
	return max(int(math.Round(float64(n)*s)), 1)
}

// clip cuts content positioned at row y down to the lines inside vp and
// returns it as a layer offset into viewport coordinates.
func clip(content string, y int, vp Viewport) (*lipgloss.Layer, bool) {
	lines := strings.Split(content, "\n")
	top := max(vp.Top-y, 0)
	bottom := min(len(lines), vp.Top+vp.Height-y)
	if top >= bottom {
		return nil, false
	}
	layer := lipgloss.NewLayer(strings.Join(lines[top:bottom], "\n"))
	return layer.Y(y + top - vp.Top), true
}
