package dashboard

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/dealdesk/internal/bento"
	"github.com/garrettladley/dealdesk/internal/motion"
	"github.com/garrettladley/dealdesk/internal/store"
	"github.com/garrettladley/dealdesk/internal/tui/theme"
)

const (
	taskDone = "✓"
	taskOpen = "○"
	more     = "…"
)

type tasks struct {
	env   *env
	items []store.Task
}

func newTasks(e *env) *tasks {
	return &tasks{env: e}
}

func (t *tasks) Apply(snap store.Snapshot) {
	t.items = snap.Tasks
}

func (t *tasks) Show()  {}
func (t *tasks) Close() {}

func (t *tasks) Render(w, h int, fx bento.Transform) string {
	title := t.env.cat.T("widget.tasks.title")
	if len(t.items) == 0 {
		return tile(title, faded(theme.ColorDim, fx).Render(t.env.cat.T("widget.tasks.empty")), theme.ColorBrand, w, h, fx)
	}

	_, rows := inner(w, h)
	shown := t.items
	if len(shown) > rows {
		shown = shown[:max(rows-1, 0)]
	}

	var (
		dim  = faded(theme.ColorDim, fx)
		due  = faded(theme.ColorLeads, fx)
		high = faded(theme.ColorNegative, fx).Bold(true)
		text = faded(theme.ColorWhite, fx)
	)

	lines := make([]string, 0, len(shown)+1)
	for _, task := range shown {
		mark, label := text.Render(taskOpen), text.Render(task.Title)
		if task.Done {
			mark, label = dim.Render(taskDone), dim.Strikethrough(true).Render(task.Title)
		}
		flag := " "
		if task.Priority == store.PriorityHigh && !task.Done {
			flag = high.Render("!")
		}
		lines = append(lines, mark+flag+due.Render(task.Due.Local().Format("15:04"))+" "+label)
	}
	if len(shown) < len(t.items) {
		lines = append(lines, dim.Render(fmt.Sprintf("%s +%d", more, len(t.items)-len(shown))))
	}

	return tile(title, strings.Join(lines, "\n"), theme.ColorBrand, w, h, fx)
}

// pipeline keeps one counter per stage key so a refresh animates each bar
// from where it stands.
type pipeline struct {
	env      *env
	stages   []store.Stage
	counters map[string]*motion.Counter
	shown    bool
}

func newPipeline(e *env) *pipeline {
	return &pipeline{env: e, counters: make(map[string]*motion.Counter)}
}

func (p *pipeline) Apply(snap store.Snapshot) {
	p.stages = snap.Pipeline
	for _, s := range snap.Pipeline {
		c, ok := p.counters[s.Key]
		if !ok {
			c = p.env.counter()
			p.counters[s.Key] = c
		}
		c.SetTarget(s.Count)
		if p.shown {
			c.Show()
		}
	}
}

func (p *pipeline) Show() {
	p.shown = true
	for _, c := range p.counters {
		c.Show()
	}
}

func (p *pipeline) Close() {
	for _, c := range p.counters {
		c.Close()
	}
}

func (p *pipeline) label(s store.Stage) string {
	key := "pipeline." + s.Key
	if l := p.env.cat.T(key); l != key {
		return l
	}
	return s.Label
}

func (p *pipeline) Render(w, h int, fx bento.Transform) string {
	title := p.env.cat.T("widget.pipeline.title")
	if len(p.stages) == 0 {
		return tile(title, "", theme.ColorPipeline, w, h, fx)
	}

	var (
		iw, rows = inner(w, h)
		labels   = make([]string, len(p.stages))
		labelW   int
		peak     = 1
	)
	for i, s := range p.stages {
		labels[i] = p.label(s)
		labelW = max(labelW, lipgloss.Width(labels[i]))
		peak = max(peak, s.Count)
	}

	const countW = 5
	barW := max(iw-labelW-countW-2, 0)

	var (
		fill  = faded(theme.ColorPipeline, fx)
		track = faded(theme.ColorBgLight, fx)
		text  = faded(theme.ColorWhite, fx)
	)

	lines := make([]string, 0, len(p.stages))
	for i, s := range p.stages {
		if i >= rows {
			break
		}
		v := p.counters[s.Key].Value()
		n := int(math.Round(float64(v) / float64(peak) * float64(barW)))
		n = min(max(n, 0), barW)

		lines = append(lines, fmt.Sprintf("%s %s%s %s",
			text.Render(padRight(labels[i], labelW)),
			fill.Render(strings.Repeat("█", n)),
			track.Render(strings.Repeat("░", barW-n)),
			text.Render(fmt.Sprintf("%*s", countW, p.env.thousands(v))),
		))
	}
	return tile(title, strings.Join(lines, "\n"), theme.ColorPipeline, w, h, fx)
}

func padRight(s string, w int) string {
	return s + strings.Repeat(" ", max(w-lipgloss.Width(s), 0))
}

// Action is a quick action bound to a key.
type Action struct {
	Key   string
	Label string // catalog key
}

var QuickActions = []Action{
	{Key: "n", Label: "widget.actions.new_lead"},
	{Key: "v", Label: "widget.actions.book_viewing"},
	{Key: "t", Label: "widget.actions.add_task"},
	{Key: "r", Label: "widget.actions.refresh"},
}

// LookupAction returns the quick action bound to key.
func LookupAction(key string) (Action, bool) {
	for _, a := range QuickActions {
		if a.Key == key {
			return a, true
		}
	}
	return Action{}, false
}

type actions struct {
	env    *env
	active string // key of the highlighted action
}

func newActions(e *env) *actions {
	return &actions{env: e}
}

func (a *actions) Apply(store.Snapshot) {}
func (a *actions) Show()                {}
func (a *actions) Close()               {}

func (a *actions) Render(w, h int, fx bento.Transform) string {
	var (
		key    = faded(theme.ColorBgDark, fx).Background(bento.Fade(theme.ColorBrand, theme.ColorBgDark, fx.Opacity)).Bold(true)
		label  = faded(theme.ColorWhite, fx)
		active = label.Reverse(true)
	)

	lines := make([]string, 0, len(QuickActions))
	for _, act := range QuickActions {
		l := label.Render(a.env.cat.T(act.Label))
		if act.Key == a.active {
			l = active.Render(a.env.cat.T(act.Label))
		}
		lines = append(lines, key.Render(" "+act.Key+" ")+" "+l)
	}
	return tile(a.env.cat.T("widget.actions.title"), strings.Join(lines, "\n"), theme.ColorBrand, w, h, fx)
}
