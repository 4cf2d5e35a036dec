package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/dealdesk/internal/storage"
	"github.com/garrettladley/dealdesk/internal/store"
	"github.com/garrettladley/dealdesk/internal/xslog"
)

type Cached struct {
	repo  storage.Dashboard
	cache storage.SnapshotCache
	ttl   time.Duration
	now   func() time.Time
}

var _ Service = (*Cached)(nil)

type Option func(*Cached)

func WithClock(now func() time.Time) Option {
	return func(c *Cached) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCached serves snapshots from repo, caching them for ttl. A nil cache
// or a non-positive ttl disables caching.
func NewCached(repo storage.Dashboard, cache storage.SnapshotCache, ttl time.Duration, opts ...Option) *Cached {
	c := &Cached{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cached) Snapshot(ctx context.Context, orgID string) (store.Snapshot, error) {
	logger := xslog.FromContext(ctx)

	if c.caching() {
		snap, err := c.cache.GetSnapshot(ctx, orgID)
		switch {
		case err == nil:
			logger.DebugContext(ctx, "snapshot served from cache", xslog.Cache(true))
			return snap, nil
		case !errors.Is(err, storage.ErrNotFound):
			logger.WarnContext(ctx, "snapshot cache read failed", xslog.Error(err))
		}
	}

	snap, err := c.assemble(ctx, orgID)
	if err != nil {
		return store.Snapshot{}, err
	}

	if c.caching() {
		if err := c.cache.SetSnapshot(ctx, orgID, snap, c.ttl); err != nil {
			logger.WarnContext(ctx, "snapshot cache write failed", xslog.Error(err))
		}
	}
	logger.DebugContext(ctx, "snapshot assembled", xslog.Cache(false))
	return snap, nil
}

func (c *Cached) assemble(ctx context.Context, orgID string) (store.Snapshot, error) {
	now := c.now()
	snap := store.Snapshot{UpdatedAt: now.UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := c.repo.Stats(gctx, orgID, now)
		snap.Stats = stats
		return err
	})
	g.Go(func() error {
		tasks, err := c.repo.Tasks(gctx, orgID, now, DefaultTaskLimit)
		snap.Tasks = tasks
		return err
	})
	g.Go(func() error {
		stages, err := c.repo.Pipeline(gctx, orgID)
		snap.Pipeline = stages
		return err
	})
	g.Go(func() error {
		insight, err := c.repo.Insight(gctx, orgID)
		snap.Insight = insight
		return err
	})
	if err := g.Wait(); err != nil {
		return store.Snapshot{}, fmt.Errorf("failed to assemble snapshot: %w", err)
	}

	if snap.Tasks == nil {
		snap.Tasks = []store.Task{}
	}
	return snap, nil
}

func (c *Cached) Stats(ctx context.Context, orgID string) (store.Stats, error) {
	return c.repo.Stats(ctx, orgID, c.now())
}

func (c *Cached) Tasks(ctx context.Context, orgID string, limit int) ([]store.Task, error) {
	tasks, err := c.repo.Tasks(ctx, orgID, c.now(), limit)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []store.Task{}
	}
	return tasks, nil
}

func (c *Cached) Pipeline(ctx context.Context, orgID string) ([]store.Stage, error) {
	return c.repo.Pipeline(ctx, orgID)
}

func (c *Cached) Insight(ctx context.Context, orgID string) (string, error) {
	return c.repo.Insight(ctx, orgID)
}

func (c *Cached) caching() bool {
	return c.cache != nil && c.ttl > 0
}
