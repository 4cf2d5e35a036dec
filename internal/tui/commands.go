package tui

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/garrettladley/dealdesk/internal/layout"
	"github.com/garrettladley/dealdesk/internal/store"
	"github.com/garrettladley/dealdesk/internal/version"
	"github.com/garrettladley/dealdesk/internal/xslog"
)

const releaseCheckTimeout = 5 * time.Second

// listenStoreCmd waits for the next store state. It must be re-issued after
// every StoreChangedMsg to keep listening.
func listenStoreCmd(ctx context.Context, ch <-chan store.State) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case st, ok := <-ch:
			if !ok {
				return nil
			}
			return StoreChangedMsg{State: st}
		case <-ctx.Done():
			return nil
		}
	}
}

// listenLayoutCmd waits for the next layout file change.
func listenLayoutCmd(ctx context.Context, ch <-chan layout.Update) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case u, ok := <-ch:
			if !ok {
				return nil
			}
			return LayoutChangedMsg{Update: u}
		case <-ctx.Done():
			return nil
		}
	}
}

func checkReleaseCmd(ctx context.Context, logger *slog.Logger, checker ReleaseChecker) tea.Cmd {
	if checker == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, releaseCheckTimeout)
		defer cancel()

		r, newer, err := checker.Check(ctx, version.Get())
		if err != nil {
			logger.DebugContext(ctx, "release check failed", xslog.Error(err))
			return nil
		}
		if !newer {
			return nil
		}
		return UpdateAvailableMsg{Version: r.TagName}
	}
}

func flashDoneCmd(key string) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{key: key}
	})
}
