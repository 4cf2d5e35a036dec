package tui

import (
	"context"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/dealdesk/internal/bento"
	"github.com/garrettladley/dealdesk/internal/layout"
	"github.com/garrettladley/dealdesk/internal/motion"
	"github.com/garrettladley/dealdesk/internal/store"
	"github.com/garrettladley/dealdesk/internal/tui/components/footer"
	"github.com/garrettladley/dealdesk/internal/tui/components/status"
	"github.com/garrettladley/dealdesk/internal/tui/page/dashboard"
	"github.com/garrettladley/dealdesk/internal/tui/page/splash"
	"github.com/garrettladley/dealdesk/internal/tui/schedule"
	"github.com/garrettladley/dealdesk/internal/tui/theme"
	"github.com/garrettladley/dealdesk/internal/xslog"
)

var _ tea.Model = (*Model)(nil)

type page uint

const (
	splashPage page = iota
	dashboardPage
)

// headerHeight is the title line plus a gap above the grid.
const headerHeight = 2

type Model struct {
	ready          bool
	page           page
	viewportWidth  int
	viewportHeight int
	theme          theme.Theme
	deps           Deps

	loop      *schedule.Loop
	splash    *splash.Page
	dashboard *dashboard.Page

	storeCh     <-chan store.State
	unsubscribe func()
	state       store.State
	update      string
}

func New(deps Deps) Model {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Clock == nil {
		deps.Clock = motion.RealClock
	}

	loop := schedule.New(deps.FPS)

	// a nil scheduler shows every animation in its final state
	var (
		frames   motion.FrameScheduler
		interval motion.IntervalScheduler
	)
	if !deps.ReducedMotion {
		frames, interval = loop, loop
	}

	m := Model{
		page:   splashPage,
		theme:  theme.New(),
		deps:   deps,
		loop:   loop,
		splash: splash.New(deps.Catalog.T("app.tagline"), interval),
		dashboard: dashboard.New(dashboard.Options{
			Catalog:  deps.Catalog,
			Layout:   deps.Layout,
			Clock:    deps.Clock,
			Frames:   frames,
			Interval: interval,
		}),
	}
	m.warnUnknown(deps.Layout)
	if deps.Store != nil {
		m.storeCh, m.unsubscribe = deps.Store.Subscribe()
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	m.splash.Start()
	return tea.Batch(
		m.splash.Cmd(),
		m.loop.Cmd(),
		listenStoreCmd(m.deps.Ctx, m.storeCh),
		listenLayoutCmd(m.deps.Ctx, m.deps.LayoutUpdates),
		checkReleaseCmd(m.deps.Ctx, m.deps.Logger, m.deps.Releases),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if !m.loop.Handle(msg) {
		switch msg := msg.(type) {
		case tea.WindowSizeMsg:
			if bp := bento.DefaultBreakpoints.For(msg.Width); !m.ready || bp != bento.DefaultBreakpoints.For(m.viewportWidth) {
				m.deps.Logger.DebugContext(m.deps.Ctx, "breakpoint", xslog.Breakpoint(bp.String()))
			}
			m.viewportWidth = msg.Width
			m.viewportHeight = msg.Height
			m.ready = true
			m.dashboard.Resize(msg.Width, m.gridHeight())

		case tea.KeyPressMsg:
			cmd, quit := m.handleKey(msg.String())
			if quit {
				return m, tea.Quit
			}
			cmds = append(cmds, cmd)

		case splash.DoneMsg:
			m.showDashboard()

		case StoreChangedMsg:
			m.state = msg.State
			// the first state is the empty one delivered on subscribe
			if msg.State.Version > 0 {
				m.dashboard.Apply(msg.State.Snapshot)
			}
			cmds = append(cmds, listenStoreCmd(m.deps.Ctx, m.storeCh))

		case LayoutChangedMsg:
			if msg.Update.Err != nil {
				m.deps.Logger.WarnContext(m.deps.Ctx, "ignoring invalid layout", xslog.Error(msg.Update.Err))
			} else {
				m.applyLayout(msg.Update.Layout)
			}
			cmds = append(cmds, listenLayoutCmd(m.deps.Ctx, m.deps.LayoutUpdates))

		case UpdateAvailableMsg:
			m.update = msg.Version

		case flashDoneMsg:
			if m.dashboard.Flashed() == msg.key {
				m.dashboard.Flash("")
			}
		}
	}

	cmds = append(cmds, m.splash.Cmd(), m.loop.Cmd())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(key string) (tea.Cmd, bool) {
	switch key {
	case "q", "ctrl+c":
		m.Close()
		return nil, true
	}

	if m.page == splashPage {
		m.showDashboard()
		return nil, false
	}

	switch key {
	case "j", "down":
		m.dashboard.ScrollBy(1)
	case "k", "up":
		m.dashboard.ScrollBy(-1)
	case "pgdown", "space":
		m.dashboard.ScrollBy(max(m.gridHeight()/2, 1))
	case "pgup":
		m.dashboard.ScrollBy(-max(m.gridHeight()/2, 1))
	case "g", "home":
		m.dashboard.ScrollTo(0)
	case "G", "end":
		m.dashboard.ScrollToEnd()
	default:
		action, ok := dashboard.LookupAction(key)
		if !ok {
			return nil, false
		}
		if action.Key == "r" && m.deps.Syncer != nil {
			m.deps.Syncer.Trigger()
		}
		m.deps.Logger.InfoContext(m.deps.Ctx, "quick action", slog.String("action", action.Label))
		m.dashboard.Flash(action.Key)
		return flashDoneCmd(action.Key), false
	}
	return nil, false
}

func (m *Model) applyLayout(l layout.Layout) {
	m.warnUnknown(l)
	m.dashboard.SetLayout(l)
	m.deps.Logger.InfoContext(m.deps.Ctx, "layout reloaded", xslog.Count(len(l.Widgets)))
}

// warnUnknown logs widget names that will render as placeholders.
func (m *Model) warnUnknown(l layout.Layout) {
	for _, name := range l.Names() {
		if !dashboard.Known(name) {
			m.deps.Logger.WarnContext(m.deps.Ctx, "layout names an unknown widget", xslog.Widget(name))
		}
	}
}

func (m *Model) showDashboard() {
	if m.page == dashboardPage {
		return
	}
	m.page = dashboardPage
	m.splash.Close()
	m.dashboard.Start()
}

// Close releases the store subscription and stops every animation.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.splash.Close()
	m.dashboard.Close()
}

func (m *Model) gridHeight() int {
	return max(m.viewportHeight-headerHeight-footer.Height, 0)
}

func (m *Model) View() tea.View {
	view := tea.NewView("")
	view.AltScreen = true

	// splash uses pure black BG, everything else uses default dark
	if m.page == splashPage {
		view.BackgroundColor = theme.ColorBlack
	} else {
		view.BackgroundColor = m.theme.Background()
	}

	if !m.ready {
		return view
	}

	view.SetContent(m.content())
	return view
}

func (m *Model) content() string {
	switch m.page {
	case splashPage:
		return m.splash.View(m.theme, m.viewportWidth, m.viewportHeight)
	default:
		return lipgloss.JoinVertical(
			lipgloss.Left,
			m.headerView(),
			lipgloss.NewStyle().Height(m.gridHeight()).MaxHeight(m.gridHeight()).Render(m.dashboard.View()),
			m.footerView(),
		)
	}
}

func (m *Model) headerView() string {
	title := m.theme.TextAccent().Render("dealdesk")
	if m.deps.OrgID != "" {
		title += m.theme.TextMuted().Render(" · " + m.deps.OrgID)
	}

	indicator := status.Indicator{
		Status:    m.state.Status,
		UpdatedAt: m.state.Snapshot.UpdatedAt,
	}.Render(m.deps.Catalog)

	spacer := max(m.viewportWidth-lipgloss.Width(title)-lipgloss.Width(indicator)-4, 1)
	line := lipgloss.NewStyle().
		PaddingLeft(2).
		PaddingRight(2).
		MaxWidth(m.viewportWidth).
		Render(title + strings.Repeat(" ", spacer) + indicator)
	return line + "\n"
}

func (m *Model) footerView() string {
	cat := m.deps.Catalog
	hints := []footer.Hint{
		{Key: "j/k", Desc: cat.T("footer.scroll")},
		{Key: "r", Desc: cat.T("footer.refresh")},
		{Key: "q", Desc: cat.T("footer.quit")},
	}

	var right string
	if m.update != "" {
		right = lipgloss.NewStyle().Foreground(theme.ColorBrand).Render(cat.Tf("footer.update", m.update))
	}
	return footer.New(hints, right, m.viewportWidth).Render()
}
