package dashboard

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/dealdesk/internal/bento"
	"github.com/garrettladley/dealdesk/internal/i18n"
	"github.com/garrettladley/dealdesk/internal/motion"
	"github.com/garrettladley/dealdesk/internal/store"
	"github.com/garrettladley/dealdesk/internal/tui/theme"
)

// Widget names understood by the layout file.
const (
	Leads    = "leads"
	Response = "response"
	Mandates = "mandates"
	Tasks    = "tasks"
	Pipeline = "pipeline"
	Actions  = "actions"
	Insight  = "insight"
)

// Known reports whether name is a widget this page can draw.
func Known(name string) bool {
	switch name {
	case Leads, Response, Mandates, Tasks, Pipeline, Actions, Insight:
		return true
	}
	return false
}

// widget is one tile. Widgets only read the snapshots they are given.
type widget interface {
	// Apply hands the widget new data. Animated values retarget in place.
	Apply(snap store.Snapshot)
	// Show starts the widget's animations. It is called once, the first
	// time the tile scrolls into view.
	Show()
	Render(w, h int, fx bento.Transform) string
	Close()
}

// env is what every widget needs to build animators and text.
type env struct {
	cat      *i18n.Catalog
	clock    motion.Clock
	frames   motion.FrameScheduler
	interval motion.IntervalScheduler
}

func (e *env) counter() *motion.Counter {
	return motion.NewCounter(0, motion.DefaultCountDuration,
		motion.WithClock(e.clock),
		motion.WithFrames(e.frames),
	)
}

func (e *env) thousands(n int) string {
	return motion.FormatInt(n, e.cat.T("format.thousands"))
}

func newWidget(name string, e *env) widget {
	switch name {
	case Leads:
		return newLeads(e)
	case Response:
		return newResponse(e)
	case Mandates:
		return newMandates(e)
	case Tasks:
		return newTasks(e)
	case Pipeline:
		return newPipeline(e)
	case Actions:
		return newActions(e)
	case Insight:
		return newInsight(e)
	default:
		return &unknown{env: e, name: name}
	}
}

// tile wraps body in the standard panel.
func tile(title, body string, accent color.Color, w, h int, fx bento.Transform) string {
	return bento.Tile{
		Title:      title,
		Body:       body,
		Accent:     accent,
		Border:     theme.ColorBgLight,
		Foreground: theme.ColorWhite,
		Background: theme.ColorBgDark,
	}.Render(w, h, fx)
}

// inner is the body area of a w×h tile: border, padding and the title row
// with its gap are taken off.
func inner(w, h int) (int, int) {
	return max(w-4, 0), max(h-4, 0)
}

// faded returns a foreground style for c at the transform's opacity.
func faded(c color.Color, fx bento.Transform) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(bento.Fade(c, theme.ColorBgDark, fx.Opacity))
}

type unknown struct {
	env  *env
	name string
}

func (u *unknown) Apply(store.Snapshot) {}
func (u *unknown) Show()                {}
func (u *unknown) Close()               {}

func (u *unknown) Render(w, h int, fx bento.Transform) string {
	return tile(u.env.cat.Tf("widget.unknown.title", u.name), "", theme.ColorDim, w, h, fx)
}
