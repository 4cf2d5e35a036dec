package bento

import (
	"image/color"
	"strings"
	"testing"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/lucasb-eyer/go-colorful"
)

func TestBreakpointsFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		width int
		want  Breakpoint
	}{
		{width: 0, want: Narrow},
		{width: 71, want: Narrow},
		{width: 72, want: Medium},
		{width: 131, want: Medium},
		{width: 132, want: Wide},
		{width: 300, want: Wide},
	}

	for _, tt := range tests {
		if got := DefaultBreakpoints.For(tt.width); got != tt.want {
			t.Errorf("For(%d) = %s, want %s", tt.width, got, tt.want)
		}
	}
}

func TestResolveSpan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bp       Breakpoint
		col, row int
		wantCols int
		wantRows int
	}{
		{name: "wide honours 1", bp: Wide, col: 1, row: 1, wantCols: 1, wantRows: 1},
		{name: "wide honours 2", bp: Wide, col: 2, row: 2, wantCols: 2, wantRows: 2},
		{name: "wide honours 3", bp: Wide, col: 3, row: 1, wantCols: 3, wantRows: 1},
		{name: "wide honours 4", bp: Wide, col: 4, row: 1, wantCols: 4, wantRows: 1},
		{name: "wide honours 6", bp: Wide, col: 6, row: 2, wantCols: 6, wantRows: 2},
		{name: "wide rejects 5", bp: Wide, col: 5, row: 1, wantCols: 1, wantRows: 1},
		{name: "wide rejects 7", bp: Wide, col: 7, row: 1, wantCols: 1, wantRows: 1},
		{name: "wide rejects 0", bp: Wide, col: 0, row: 0, wantCols: 1, wantRows: 1},
		{name: "wide rejects negative", bp: Wide, col: -2, row: -1, wantCols: 1, wantRows: 1},
		{name: "wide rejects row 3", bp: Wide, col: 2, row: 3, wantCols: 2, wantRows: 1},
		{name: "medium caps 6", bp: Medium, col: 6, row: 2, wantCols: 2, wantRows: 1},
		{name: "medium caps 5", bp: Medium, col: 5, row: 1, wantCols: 2, wantRows: 1},
		{name: "medium keeps 2", bp: Medium, col: 2, row: 1, wantCols: 2, wantRows: 1},
		{name: "medium keeps 1", bp: Medium, col: 1, row: 2, wantCols: 1, wantRows: 1},
		{name: "medium zero", bp: Medium, col: 0, row: 0, wantCols: 1, wantRows: 1},
		{name: "narrow collapses", bp: Narrow, col: 6, row: 2, wantCols: 1, wantRows: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cols, rows := ResolveSpan(tt.bp, tt.col, tt.row)
			if cols != tt.wantCols || rows != tt.wantRows {
				t.Errorf("ResolveSpan(%s, %d, %d) = (%d, %d), want (%d, %d)",
					tt.bp, tt.col, tt.row, cols, rows, tt.wantCols, tt.wantRows)
			}
		})
	}
}

func spans(cs ...[2]int) []Cell {
	cells := make([]Cell, len(cs))
	for i, c := range cs {
		cells[i] = Cell{ID: string(rune('a' + i)), ColSpan: c[0], RowSpan: c[1]}
	}
	return cells
}

func TestPlace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cells []Cell
		bp    Breakpoint
		want  []Placement
	}{
		{
			name:  "wide honours declared spans with staggered delays",
			cells: spans([2]int{4, 1}, [2]int{2, 1}, [2]int{1, 1}),
			bp:    Wide,
			want: []Placement{
				{Index: 0, ID: "a", Col: 0, Row: 0, Cols: 4, Rows: 1, Delay: 0},
				{Index: 1, ID: "b", Col: 4, Row: 0, Cols: 2, Rows: 1, Delay: 80 * time.Millisecond},
				{Index: 2, ID: "c", Col: 0, Row: 1, Cols: 1, Rows: 1, Delay: 160 * time.Millisecond},
			},
		},
		{
			name:  "wide packs around a tall cell",
			cells: spans([2]int{4, 2}, [2]int{2, 1}, [2]int{2, 1}),
			bp:    Wide,
			want: []Placement{
				{Index: 0, ID: "a", Col: 0, Row: 0, Cols: 4, Rows: 2, Delay: 0},
				{Index: 1, ID: "b", Col: 4, Row: 0, Cols: 2, Rows: 1, Delay: 80 * time.Millisecond},
				{Index: 2, ID: "c", Col: 4, Row: 1, Cols: 2, Rows: 1, Delay: 160 * time.Millisecond},
			},
		},
		{
			name:  "wide falls back for unsupported span",
			cells: spans([2]int{5, 1}, [2]int{3, 9}),
			bp:    Wide,
			want: []Placement{
				{Index: 0, ID: "a", Col: 0, Row: 0, Cols: 1, Rows: 1, Delay: 0},
				{Index: 1, ID: "b", Col: 1, Row: 0, Cols: 3, Rows: 1, Delay: 80 * time.Millisecond},
			},
		},
		{
			name:  "medium caps at two tracks",
			cells: spans([2]int{6, 2}, [2]int{1, 1}, [2]int{3, 1}),
			bp:    Medium,
			want: []Placement{
				{Index: 0, ID: "a", Col: 0, Row: 0, Cols: 2, Rows: 1, Delay: 0},
				{Index: 1, ID: "b", Col: 0, Row: 1, Cols: 1, Rows: 1, Delay: 80 * time.Millisecond},
				{Index: 2, ID: "c", Col: 0, Row: 2, Cols: 2, Rows: 1, Delay: 160 * time.Millisecond},
			},
		},
		{
			name:  "narrow stacks",
			cells: spans([2]int{6, 2}, [2]int{2, 1}),
			bp:    Narrow,
			want: []Placement{
				{Index: 0, ID: "a", Col: 0, Row: 0, Cols: 1, Rows: 1, Delay: 0},
				{Index: 1, ID: "b", Col: 0, Row: 1, Cols: 1, Rows: 1, Delay: 80 * time.Millisecond},
			},
		},
		{
			name: "empty",
			bp:   Wide,
			want: []Placement{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Place(tt.cells, tt.bp)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Place() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStaggerDelayIgnoresSpan(t *testing.T) {
	t.Parallel()

	cells := spans([2]int{6, 2}, [2]int{1, 1}, [2]int{4, 2}, [2]int{2, 1})
	for _, p := range Place(cells, Wide) {
		want := time.Duration(p.Index) * 80 * time.Millisecond
		if p.Delay != want {
			t.Errorf("placement %d delay = %s, want %s", p.Index, p.Delay, want)
		}
	}
}

func TestEntrance(t *testing.T) {
	t.Parallel()

	start := Entrance(2, 0)
	if start.Opacity != 0 || start.Rise != entranceRise || start.Scale != entranceScale {
		t.Errorf("Entrance(2, 0) = %+v, want hidden start", start)
	}

	// cell 2 waits 160ms before moving
	if fx := Entrance(2, 160*time.Millisecond); fx.Opacity != 0 {
		t.Errorf("Entrance(2, 160ms).Opacity = %v, want 0", fx.Opacity)
	}
	if fx := Entrance(2, 200*time.Millisecond); fx.Opacity <= 0 {
		t.Errorf("Entrance(2, 200ms).Opacity = %v, want > 0", fx.Opacity)
	}

	if diff := cmp.Diff(Rest, Entrance(2, 160*time.Millisecond+EntranceDuration)); diff != "" {
		t.Errorf("Entrance after duration mismatch (-want +got):\n%s", diff)
	}

	if Settled(3, 600*time.Millisecond) {
		t.Error("Settled(3, 600ms) = true")
	}
	if !Settled(3, 610*time.Millisecond) {
		t.Error("Settled(3, 610ms) = false")
	}
}

func TestIntersects(t *testing.T) {
	t.Parallel()

	r := Rect{X: 0, Y: 10, W: 20, H: 9}
	tests := []struct {
		vp   Viewport
		want bool
	}{
		{vp: Viewport{Top: 0, Height: 10}, want: false},
		{vp: Viewport{Top: 0, Height: 11}, want: true},
		{vp: Viewport{Top: 18, Height: 5}, want: true},
		{vp: Viewport{Top: 19, Height: 5}, want: false},
		{vp: Viewport{Top: 12, Height: 0}, want: false},
	}
	for _, tt := range tests {
		if got := Intersects(r, tt.vp); got != tt.want {
			t.Errorf("Intersects(%+v, %+v) = %v, want %v", r, tt.vp, got, tt.want)
		}
	}
}

func TestGridRect(t *testing.T) {
	t.Parallel()

	g := DefaultGrid()
	tests := []struct {
		name string
		p    Placement
		bp   Breakpoint
		want Rect
	}{
		{
			name: "wide first four tracks",
			p:    Placement{Col: 0, Row: 0, Cols: 4, Rows: 1},
			bp:   Wide,
			want: Rect{X: 0, Y: 0, W: 98, H: 9},
		},
		{
			name: "wide last two tracks end flush",
			p:    Placement{Col: 4, Row: 0, Cols: 2, Rows: 1},
			bp:   Wide,
			want: Rect{X: 100, Y: 0, W: 48, H: 9},
		},
		{
			name: "tall cell spans the row gap",
			p:    Placement{Col: 0, Row: 1, Cols: 1, Rows: 2},
			bp:   Wide,
			want: Rect{X: 0, Y: 10, W: 23, H: 19},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := g.Rect(tt.p, tt.bp, 148)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Rect() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func fill(r rune) func(w, h int, fx Transform) string {
	return func(w, h int, fx Transform) string {
		line := strings.Repeat(string(r), w)
		return strings.TrimSuffix(strings.Repeat(line+"\n", h), "\n")
	}
}

func TestGridRender(t *testing.T) {
	t.Parallel()

	g := DefaultGrid()
	cells := []Cell{
		{ID: "a", ColSpan: 4, RowSpan: 1, Render: fill('a')},
		{ID: "b", ColSpan: 2, RowSpan: 1, Render: fill('b')},
		{ID: "c", ColSpan: 6, RowSpan: 1, Render: fill('c')},
	}

	t.Run("viewport hides lower row", func(t *testing.T) {
		t.Parallel()
		f := g.Render(cells, 148, Viewport{Top: 0, Height: 9}, time.Minute)
		if diff := cmp.Diff([]int{0, 1}, f.Visible); diff != "" {
			t.Errorf("Visible mismatch (-want +got):\n%s", diff)
		}
		if f.Height != 19 {
			t.Errorf("Height = %d, want 19", f.Height)
		}
		if !strings.Contains(f.View, "aaaa") || !strings.Contains(f.View, "bbbb") {
			t.Error("visible cells missing from view")
		}
		if strings.Contains(f.View, "c") {
			t.Error("offscreen cell drawn")
		}
	})

	t.Run("scrolled viewport shows both rows", func(t *testing.T) {
		t.Parallel()
		f := g.Render(cells, 148, Viewport{Top: 5, Height: 10}, time.Minute)
		if diff := cmp.Diff([]int{0, 1, 2}, f.Visible); diff != "" {
			t.Errorf("Visible mismatch (-want +got):\n%s", diff)
		}
		if got := strings.Count(strings.TrimRight(f.View, "\n"), "\n") + 1; got != 10 {
			t.Errorf("view height = %d, want 10", got)
		}
	})

	t.Run("stagger reveals in document order", func(t *testing.T) {
		t.Parallel()
		vp := Viewport{Top: 0, Height: 30}

		f := g.Render(cells, 148, vp, 0)
		if strings.ContainsAny(f.View, "abc") {
			t.Error("cells drawn before their entrance began")
		}

		f = g.Render(cells, 148, vp, 100*time.Millisecond)
		if !strings.Contains(f.View, "a") || !strings.Contains(f.View, "b") {
			t.Error("first two cells not drawn at 100ms")
		}
		if strings.Contains(f.View, "c") {
			t.Error("third cell drawn before its 160ms delay")
		}
	})
}

func TestFade(t *testing.T) {
	t.Parallel()

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.RGBA{A: 255}

	if got := Fade(white, black, 1); got != color.Color(white) {
		t.Errorf("Fade(opacity=1) = %v, want unchanged", got)
	}

	c, _ := colorful.MakeColor(Fade(white, black, 0))
	if c.Hex() != "#000000" {
		t.Errorf("Fade(opacity=0) = %s, want #000000", c.Hex())
	}
}

func TestTileSize(t *testing.T) {
	t.Parallel()

	tile := Tile{
		Title:      "Leads",
		Body:       "128 this week",
		Accent:     lipgloss.Color("#00F19F"),
		Border:     lipgloss.Color("#283339"),
		Foreground: lipgloss.Color("#FFFFFF"),
		Background: lipgloss.Color("#101518"),
	}
	out := tile.Render(30, 8, Rest)
	if w, h := lipgloss.Width(out), lipgloss.Height(out); w != 30 || h != 8 {
		t.Errorf("tile size = %dx%d, want 30x8", w, h)
	}
	if tile.Render(1, 1, Rest) != "" {
		t.Error("tile rendered into a 1x1 slot")
	}
}
