package tui

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garrettladley/dealdesk/internal/client/release"
	"github.com/garrettladley/dealdesk/internal/i18n"
	"github.com/garrettladley/dealdesk/internal/layout"
	"github.com/garrettladley/dealdesk/internal/motion/motiontest"
	"github.com/garrettladley/dealdesk/internal/store"
	"github.com/garrettladley/dealdesk/internal/tui/page/splash"
)

type countingRefresher struct {
	n atomic.Int32
}

func (r *countingRefresher) Trigger() { r.n.Add(1) }

type stubReleases struct {
	tag   string
	newer bool
	err   error
}

func (s stubReleases) Check(context.Context, string) (release.Release, bool, error) {
	return release.Release{TagName: s.tag}, s.newer, s.err
}

func key(s string) tea.KeyPressMsg {
	r := []rune(s)
	return tea.KeyPressMsg{Code: r[0], Text: s}
}

func testSnapshot() store.Snapshot {
	return store.Snapshot{
		Stats: store.Stats{
			LeadsThisWeek:  1284,
			LeadsLastWeek:  1107,
			ResponseRate:   87.4,
			ActiveMandates: 46,
			ViewingsBooked: 19,
		},
		Pipeline: []store.Stage{{Key: "prospect", Label: "Prospect", Count: 18}},
		Insight:  "Busy week.",
	}
}

func newTestModel(t *testing.T, st *store.Store) (*Model, *countingRefresher) {
	t.Helper()

	refresher := &countingRefresher{}
	m := New(Deps{
		Ctx:           t.Context(),
		Store:         st,
		Syncer:        refresher,
		Catalog:       i18n.MustLoad("en"),
		OrgID:         "acme",
		Layout:        layout.Default(),
		ReducedMotion: true,
		Clock:         motiontest.NewFakeClock(),
	})
	t.Cleanup(m.Close)

	require.NotNil(t, m.Init())
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 44})
	return &m, refresher
}

func TestModel_SplashThenDashboard(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, store.New())
	assert.Equal(t, splashPage, m.page)
	assert.Contains(t, ansi.Strip(m.content()), "Your agency, at a glance.")

	m.Update(splash.DoneMsg{})
	assert.Equal(t, dashboardPage, m.page)

	out := ansi.Strip(m.content())
	assert.Contains(t, out, "dealdesk · acme")
	assert.Contains(t, out, "● connecting")
	assert.Contains(t, out, "q quit")
}

func TestModel_AnyKeySkipsSplash(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, store.New())
	m.Update(key("x"))
	assert.Equal(t, dashboardPage, m.page)
}

func TestModel_StoreChanges(t *testing.T) {
	t.Parallel()

	st := store.New()
	m, _ := newTestModel(t, st)
	m.Update(splash.DoneMsg{})

	_, cmd := m.Update(StoreChangedMsg{State: st.State()})
	assert.NotNil(t, cmd, "listening continues after each change")

	st.Publish(testSnapshot())
	m.Update(StoreChangedMsg{State: st.State()})

	out := ansi.Strip(m.content())
	assert.Contains(t, out, "● live")
	assert.Contains(t, out, "1,284")

	st.Fail(errors.New("connection refused"))
	m.Update(StoreChangedMsg{State: st.State()})
	assert.Contains(t, ansi.Strip(m.content()), "● offline")
	assert.Contains(t, ansi.Strip(m.content()), "1,284", "last data stays on screen")
}

func TestModel_Keys(t *testing.T) {
	t.Parallel()

	st := store.New()
	m, refresher := newTestModel(t, st)
	m.Update(splash.DoneMsg{})
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 24})

	m.Update(key("j"))
	assert.Equal(t, 1, m.dashboard.Scroll())
	m.Update(key("k"))
	assert.Equal(t, 0, m.dashboard.Scroll())
	m.Update(key("G"))
	assert.Positive(t, m.dashboard.Scroll())
	m.Update(key("g"))
	assert.Equal(t, 0, m.dashboard.Scroll())

	_, cmd := m.Update(key("r"))
	assert.NotNil(t, cmd)
	assert.EqualValues(t, 1, refresher.n.Load())
	assert.Equal(t, "r", m.dashboard.Flashed())

	// a stale flash timer does not clear a newer highlight
	m.Update(key("n"))
	m.Update(flashDoneMsg{key: "r"})
	assert.Equal(t, "n", m.dashboard.Flashed())
	m.Update(flashDoneMsg{key: "n"})
	assert.Empty(t, m.dashboard.Flashed())
	assert.EqualValues(t, 1, refresher.n.Load(), "only r refreshes")

	_, cmd = m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_LayoutUpdates(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, store.New())
	m.Update(splash.DoneMsg{})

	m.Update(LayoutChangedMsg{Update: layout.Update{Err: errors.New("bad yaml")}})
	assert.Contains(t, ansi.Strip(m.content()), "Quick actions", "invalid layout is ignored")

	l, err := layout.Parse([]byte("widgets:\n  - widget: leads\n    col_span: 6\n"))
	require.NoError(t, err)
	m.Update(LayoutChangedMsg{Update: layout.Update{Layout: l}})
	assert.NotContains(t, ansi.Strip(m.content()), "Quick actions")
	assert.Contains(t, ansi.Strip(m.content()), "Leads this week")
}

func TestModel_UpdateNotice(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, store.New())
	m.Update(splash.DoneMsg{})
	m.Update(UpdateAvailableMsg{Version: "v1.2.0"})

	assert.Contains(t, ansi.Strip(m.content()), "v1.2.0 available")
}

func TestCheckReleaseCmd(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	assert.Nil(t, checkReleaseCmd(ctx, nil, nil))

	msg := checkReleaseCmd(ctx, nil, stubReleases{tag: "v2.0.0", newer: true})()
	assert.Equal(t, UpdateAvailableMsg{Version: "v2.0.0"}, msg)

	assert.Nil(t, checkReleaseCmd(ctx, nil, stubReleases{tag: "v0.1.0"})())
}

func TestListenStoreCmd(t *testing.T) {
	t.Parallel()

	st := store.New()
	ch, unsubscribe := st.Subscribe()

	msg := listenStoreCmd(t.Context(), ch)()
	require.IsType(t, StoreChangedMsg{}, msg)
	assert.Equal(t, store.Pending, msg.(StoreChangedMsg).State.Status)

	unsubscribe()
	assert.Nil(t, listenStoreCmd(t.Context(), ch)())

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	block := make(chan store.State)
	assert.Nil(t, listenStoreCmd(ctx, block)())
}

func TestModel_UnknownWidgetLoggedAtStartup(t *testing.T) {
	t.Parallel()

	l, err := layout.Parse([]byte("widgets:\n  - widget: leads\n  - widget: forecast\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	m := New(Deps{
		Ctx:           t.Context(),
		Logger:        slog.New(slog.NewJSONHandler(&buf, nil)),
		Store:         store.New(),
		Catalog:       i18n.MustLoad("en"),
		Layout:        l,
		ReducedMotion: true,
		Clock:         motiontest.NewFakeClock(),
	})
	t.Cleanup(m.Close)

	out := buf.String()
	assert.Contains(t, out, "layout names an unknown widget")
	assert.Contains(t, out, `"widget":"forecast"`)
	assert.NotContains(t, out, `"widget":"leads"`)
}
