// Package layout reads the declarative dashboard layout: an ordered list of
// widgets and the grid spans they ask for.
package layout

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/garrettladley/dealdesk/internal/bento"
)

//go:embed default.yaml
var defaultYAML []byte

// Entry is one widget slot. Spans are requests; the grid degrades spans it
// cannot honour.
type Entry struct {
	Widget  string `yaml:"widget"`
	ColSpan int    `yaml:"col_span"`
	RowSpan int    `yaml:"row_span"`
}

type Layout struct {
	Widgets []Entry `yaml:"widgets"`
}

// Default is the embedded layout.
func Default() Layout {
	l, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("layout: embedded default is invalid: %v", err))
	}
	return l
}

// Parse decodes and validates a layout document. Missing spans default to 1.
func Parse(data []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("failed to parse layout: %w", err)
	}

	seen := make(map[string]bool, len(l.Widgets))
	for i := range l.Widgets {
		e := &l.Widgets[i]
		if e.Widget == "" {
			return Layout{}, fmt.Errorf("layout entry %d: missing widget name", i)
		}
		if seen[e.Widget] {
			return Layout{}, fmt.Errorf("layout entry %d: widget %q listed twice", i, e.Widget)
		}
		seen[e.Widget] = true
		if e.ColSpan == 0 {
			e.ColSpan = 1
		}
		if e.RowSpan == 0 {
			e.RowSpan = 1
		}
	}
	return l, nil
}

// Load reads the layout at path. An empty path or a missing file yields the
// default layout.
func Load(path string) (Layout, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Layout{}, fmt.Errorf("failed to read layout: %w", err)
	}
	return Parse(data)
}

// Cells turns the layout into grid cells, in order. render is called with
// the widget name for each entry.
func (l Layout) Cells(render func(widget string) func(w, h int, fx bento.Transform) string) []bento.Cell {
	cells := make([]bento.Cell, 0, len(l.Widgets))
	for _, e := range l.Widgets {
		cells = append(cells, bento.Cell{
			ID:      e.Widget,
			ColSpan: e.ColSpan,
			RowSpan: e.RowSpan,
			Render:  render(e.Widget),
		})
	}
	return cells
}

// Names lists the widgets in order.
func (l Layout) Names() []string {
	out := make([]string, len(l.Widgets))
	for i, e := range l.Widgets {
		out[i] = e.Widget
	}
	return out
}
