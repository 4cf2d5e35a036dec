// Package dashboard is the bento page: widgets from the layout file, placed
// on the grid, entering in a stagger and animating once scrolled into view.
package dashboard

import (
	"time"

	"github.com/garrettladley/dealdesk/internal/bento"
	"github.com/garrettladley/dealdesk/internal/i18n"
	"github.com/garrettladley/dealdesk/internal/layout"
	"github.com/garrettladley/dealdesk/internal/motion"
	"github.com/garrettladley/dealdesk/internal/store"
)

// settledElapsed stands in for the elapsed time once every entrance is over.
const settledElapsed = time.Hour

type Options struct {
	Catalog *i18n.Catalog
	Layout  layout.Layout
	Grid    bento.Grid
	Clock   motion.Clock
	// Frames and Interval drive animation. Leaving them nil shows every
	// value and text in its final state.
	Frames   motion.FrameScheduler
	Interval motion.IntervalScheduler
}

type Page struct {
	env  *env
	grid bento.Grid

	layout  layout.Layout
	cells   []bento.Cell
	widgets map[string]widget
	gates   map[string]*motion.Gate

	width  int
	height int
	scroll int

	// ready is set by the first snapshot; gates stay shut until then so
	// counters start from real targets.
	ready bool
	snap  store.Snapshot

	started  bool
	settled  bool
	shownAt  time.Time
	now      time.Time
	flashKey string
}

func New(opts Options) *Page {
	if opts.Clock == nil {
		opts.Clock = motion.RealClock
	}
	if len(opts.Layout.Widgets) == 0 {
		opts.Layout = layout.Default()
	}
	if opts.Grid.Breakpoints == (bento.Breakpoints{}) {
		opts.Grid = bento.DefaultGrid()
	}
	p := &Page{
		env: &env{
			cat:      opts.Catalog,
			clock:    opts.Clock,
			frames:   opts.Frames,
			interval: opts.Interval,
		},
		grid:    opts.Grid,
		widgets: make(map[string]widget),
		gates:   make(map[string]*motion.Gate),
	}
	p.SetLayout(opts.Layout)
	return p
}

// SetLayout swaps the arrangement. Widgets that stay keep their state;
// removed ones are closed. The entrance does not replay.
func (p *Page) SetLayout(l layout.Layout) {
	keep := make(map[string]bool, len(l.Widgets))
	for _, name := range l.Names() {
		keep[name] = true
		if _, ok := p.widgets[name]; ok {
			continue
		}
		w := newWidget(name, p.env)
		if p.ready {
			w.Apply(p.snap)
		}
		gate := &motion.Gate{}
		gate.OnOpen(w.Show)
		p.widgets[name] = w
		p.gates[name] = gate
	}
	for name, w := range p.widgets {
		if !keep[name] {
			w.Close()
			delete(p.widgets, name)
			delete(p.gates, name)
		}
	}

	p.layout = l
	p.cells = l.Cells(func(name string) func(w, h int, fx bento.Transform) string {
		return p.widgets[name].Render
	})
	p.clampScroll()
	p.observe()
}

// Apply pushes a store snapshot into every widget.
func (p *Page) Apply(snap store.Snapshot) {
	p.snap = snap
	p.ready = true
	for _, w := range p.widgets {
		w.Apply(snap)
	}
	p.observe()
}

// Start begins the entrance choreography. Later calls do nothing.
func (p *Page) Start() {
	if p.started {
		return
	}
	p.started = true
	p.shownAt = p.env.clock.Now()
	p.now = p.shownAt

	if p.env.frames == nil {
		p.settled = true
	} else {
		p.requestFrame()
	}
	p.observe()
}

func (p *Page) requestFrame() {
	p.env.frames.RequestFrame(func(now time.Time) {
		p.now = now
		if bento.Settled(len(p.cells), p.elapsed()) {
			p.settled = true
			return
		}
		p.requestFrame()
	})
}

func (p *Page) elapsed() time.Duration {
	if p.settled {
		return settledElapsed
	}
	return p.now.Sub(p.shownAt)
}

// Resize sets the viewport: the terminal width and the rows left for the grid.
func (p *Page) Resize(width, height int) {
	p.width = max(width, 0)
	p.height = max(height, 0)
	p.clampScroll()
	p.observe()
}

// ContentHeight is the height of the whole grid at the current width.
func (p *Page) ContentHeight() int {
	return p.grid.Height(p.grid.Layout(p.cells, p.width))
}

func (p *Page) Scroll() int {
	return p.scroll
}

// ScrollBy moves the viewport by n rows, staying inside the content.
func (p *Page) ScrollBy(n int) {
	p.ScrollTo(p.scroll + n)
}

func (p *Page) ScrollTo(top int) {
	p.scroll = top
	p.clampScroll()
	p.observe()
}

func (p *Page) ScrollToEnd() {
	p.ScrollTo(p.ContentHeight())
}

func (p *Page) clampScroll() {
	limit := max(p.ContentHeight()-p.height, 0)
	p.scroll = min(max(p.scroll, 0), limit)
}

// observe feeds every cell's visibility to its gate.
func (p *Page) observe() {
	if !p.started || !p.ready || p.width <= 0 || p.height <= 0 {
		return
	}
	vp := bento.Viewport{Top: p.scroll, Height: p.height}
	bp := p.grid.Breakpoints.For(p.width)
	for _, pl := range p.grid.Layout(p.cells, p.width) {
		gate, ok := p.gates[pl.ID]
		if !ok {
			continue
		}
		gate.Observe(bento.Intersects(p.grid.Rect(pl, bp, p.width), vp))
	}
}

// Visible reports whether the named widget's gate has opened.
func (p *Page) Visible(name string) bool {
	g, ok := p.gates[name]
	return ok && g.Open()
}

// Flash highlights the quick action bound to key. An empty key clears it.
func (p *Page) Flash(key string) {
	p.flashKey = key
	if a, ok := p.widgets[Actions].(*actions); ok {
		a.active = key
	}
}

func (p *Page) Flashed() string {
	return p.flashKey
}

// Close stops every widget's animations.
func (p *Page) Close() {
	for _, w := range p.widgets {
		w.Close()
	}
}

// Frame renders the grid for the current viewport.
func (p *Page) Frame() bento.Frame {
	return p.grid.Render(p.cells, p.width, bento.Viewport{Top: p.scroll, Height: p.height}, p.elapsed())
}

func (p *Page) View() string {
	return p.Frame().View
}
