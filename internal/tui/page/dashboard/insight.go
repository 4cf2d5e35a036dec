package dashboard

import (
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/dealdesk/internal/bento"
	"github.com/garrettladley/dealdesk/internal/motion"
	"github.com/garrettladley/dealdesk/internal/store"
	"github.com/garrettladley/dealdesk/internal/tui/theme"
)

const revealCursor = "▌"

// insight types the assistant summary out once the tile is on screen.
type insight struct {
	env    *env
	writer *motion.Typewriter
	text   string
	shown  bool
}

func newInsight(e *env) *insight {
	return &insight{
		env:    e,
		writer: motion.NewTypewriter(motion.DefaultRevealInterval, e.interval),
	}
}

func (i *insight) Apply(snap store.Snapshot) {
	i.text = snap.Insight
	if i.shown && i.text != "" {
		i.writer.SetText(i.text)
	}
}

func (i *insight) Show() {
	i.shown = true
	if i.text != "" {
		i.writer.SetText(i.text)
	}
}

func (i *insight) Close() {
	i.writer.Close()
}

func (i *insight) Render(w, h int, fx bento.Transform) string {
	title := i.env.cat.T("widget.insight.title")
	if i.text == "" {
		return tile(title, faded(theme.ColorDim, fx).Render(i.env.cat.T("widget.insight.empty")), theme.ColorInsight, w, h, fx)
	}

	body := i.writer.Text()
	if i.writer.State() == motion.Revealing {
		body += revealCursor
	}

	iw, ih := inner(w, h)
	wrapped := faded(theme.ColorInsight, fx).Width(iw).Render(body)
	return tile(title, lipgloss.NewStyle().MaxHeight(ih).Render(wrapped), theme.ColorInsight, w, h, fx)
}
