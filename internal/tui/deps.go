package tui

import (
	"context"
	"log/slog"

	"github.com/garrettladley/dealdesk/internal/client/release"
	"github.com/garrettladley/dealdesk/internal/i18n"
	"github.com/garrettladley/dealdesk/internal/layout"
	"github.com/garrettladley/dealdesk/internal/motion"
	"github.com/garrettladley/dealdesk/internal/store"
)

// Refresher asks the sync side for fresh data.
type Refresher interface {
	Trigger()
}

// ReleaseChecker looks for a newer published build.
type ReleaseChecker interface {
	Check(ctx context.Context, current string) (release.Release, bool, error)
}

type Deps struct {
	Ctx     context.Context
	Logger  *slog.Logger
	Store   store.Reader
	Syncer  Refresher
	Catalog *i18n.Catalog
	OrgID   string

	Layout        layout.Layout
	LayoutUpdates <-chan layout.Update

	// Releases is optional; nil skips the update check.
	Releases ReleaseChecker

	FPS           int
	ReducedMotion bool
	Clock         motion.Clock
}
