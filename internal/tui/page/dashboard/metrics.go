package dashboard

import (
	"math"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/dealdesk/internal/bento"
	"github.com/garrettladley/dealdesk/internal/motion"
	"github.com/garrettladley/dealdesk/internal/store"
	"github.com/garrettladley/dealdesk/internal/tui/components/gauge"
	"github.com/garrettladley/dealdesk/internal/tui/theme"
)

type leads struct {
	env   *env
	count *motion.Counter
	delta float64
}

func newLeads(e *env) *leads {
	return &leads{env: e, count: e.counter()}
}

func (l *leads) Apply(snap store.Snapshot) {
	l.count.SetTarget(snap.Stats.LeadsThisWeek)
	l.delta = snap.Stats.LeadsDelta()
}

func (l *leads) Show()  { l.count.Show() }
func (l *leads) Close() { l.count.Close() }

func (l *leads) Render(w, h int, fx bento.Transform) string {
	value := faded(theme.ColorLeads, fx).Bold(true).Render(l.env.thousands(l.count.Value()))
	return tile(l.env.cat.T("widget.leads.title"), value+"\n"+l.caption(fx), theme.ColorLeads, w, h, fx)
}

// caption describes the week-over-week change to one decimal place.
func (l *leads) caption(fx bento.Transform) string {
	tenths := int(math.Round(l.delta * 10))
	switch {
	case tenths > 0:
		return faded(theme.ColorPositive, fx).Render(l.env.cat.Tf("widget.leads.delta_up", motion.FormatPercent(tenths)))
	case tenths < 0:
		return faded(theme.ColorNegative, fx).Render(l.env.cat.Tf("widget.leads.delta_down", motion.FormatPercent(-tenths)))
	default:
		return faded(theme.ColorDim, fx).Render(l.env.cat.T("widget.leads.delta_flat"))
	}
}

// response counts in tenths of a percent so the ring and the label move
// together.
type response struct {
	env    *env
	tenths *motion.Counter
}

func newResponse(e *env) *response {
	return &response{env: e, tenths: e.counter()}
}

func (r *response) Apply(snap store.Snapshot) {
	rate := min(max(snap.Stats.ResponseRate, 0), 100)
	r.tenths.SetTarget(int(math.Round(rate * 10)))
}

func (r *response) Show()  { r.tenths.Show() }
func (r *response) Close() { r.tenths.Close() }

func (r *response) Render(w, h int, fx bento.Transform) string {
	v := r.tenths.Value()
	text := motion.FormatPercent(v)

	iw, ih := inner(w, h)
	rows := min(ih, iw/2)

	ring := gauge.New(float64(v)/1000, text, bento.Fade(theme.ColorResponse, theme.ColorBgDark, fx.Opacity),
		gauge.WithTrack(theme.ColorBgLight),
		gauge.WithTextColor(bento.Fade(theme.ColorWhite, theme.ColorBgDark, fx.Opacity)),
	).Render(rows)

	body := lipgloss.PlaceHorizontal(iw, lipgloss.Center, ring)
	return tile(r.env.cat.T("widget.response.title"), body, theme.ColorResponse, w, h, fx)
}

type mandates struct {
	env      *env
	active   *motion.Counter
	viewings *motion.Counter
}

func newMandates(e *env) *mandates {
	return &mandates{env: e, active: e.counter(), viewings: e.counter()}
}

func (m *mandates) Apply(snap store.Snapshot) {
	m.active.SetTarget(snap.Stats.ActiveMandates)
	m.viewings.SetTarget(snap.Stats.ViewingsBooked)
}

func (m *mandates) Show() {
	m.active.Show()
	m.viewings.Show()
}

func (m *mandates) Close() {
	m.active.Close()
	m.viewings.Close()
}

func (m *mandates) Render(w, h int, fx bento.Transform) string {
	value := faded(theme.ColorMandates, fx).Bold(true).Render(m.env.thousands(m.active.Value()))
	caption := faded(theme.ColorDim, fx).Render(m.env.cat.Tf("widget.mandates.viewings", m.env.thousands(m.viewings.Value())))
	return tile(m.env.cat.T("widget.mandates.title"), value+"\n"+caption, theme.ColorMandates, w, h, fx)
}
