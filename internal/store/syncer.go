package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/garrettladley/dealdesk/internal/xslog"
)

const DefaultPollInterval = 30 * time.Second

// Fetcher loads a fresh snapshot from the backend.
type Fetcher interface {
	FetchDashboard(ctx context.Context) (Snapshot, error)
}

// Syncer is the only writer of a Store. It restores the cached snapshot,
// then polls the backend and publishes what it gets.
type Syncer struct {
	fetcher  Fetcher
	store    *Store
	cache    SnapshotCache
	orgID    string
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	trigger  chan struct{}
}

type SyncerOption func(*Syncer)

func WithCache(c SnapshotCache, orgID string) SyncerOption {
	return func(s *Syncer) {
		s.cache = c
		s.orgID = orgID
	}
}

func WithInterval(d time.Duration) SyncerOption {
	return func(s *Syncer) {
		if d > 0 {
			s.interval = d
		}
	}
}

func WithTimeout(d time.Duration) SyncerOption {
	return func(s *Syncer) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) SyncerOption {
	return func(s *Syncer) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewSyncer(f Fetcher, st *Store, opts ...SyncerOption) *Syncer {
	s := &Syncer{
		fetcher:  f,
		store:    st,
		interval: DefaultPollInterval,
		timeout:  10 * time.Second,
		logger:   slog.Default(),
		trigger:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore publishes the cached snapshot, if there is one.
func (s *Syncer) Restore(ctx context.Context) {
	if s.cache == nil {
		return
	}
	snap, err := s.cache.Load(ctx, s.orgID)
	if errors.Is(err, ErrNoSnapshot) {
		return
	}
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load cached snapshot", xslog.Error(err))
		return
	}
	s.store.Restore(snap)
}

// Refresh fetches once and publishes the result.
func (s *Syncer) Refresh(ctx context.Context) error {
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	snap, err := s.fetcher.FetchDashboard(fetchCtx)
	if err != nil {
		// shutting down is not an outage
		if ctx.Err() == nil {
			s.store.Fail(err)
		}
		return err
	}
	s.store.Publish(snap)

	if s.cache != nil {
		if err := s.cache.Save(ctx, s.orgID, snap); err != nil {
			s.logger.WarnContext(ctx, "failed to cache snapshot", xslog.Error(err))
		}
	}
	return nil
}

// Trigger asks a running syncer to refresh now. Triggers that arrive while
// one is pending are merged.
func (s *Syncer) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run restores the cache, refreshes, and keeps refreshing on every interval
// or trigger until ctx is done.
func (s *Syncer) Run(ctx context.Context) {
	s.Restore(ctx)
	s.refresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		case <-s.trigger:
			s.refresh(ctx)
			ticker.Reset(s.interval)
		}
	}
}

func (s *Syncer) refresh(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.WarnContext(ctx, "dashboard refresh failed", xslog.Error(err))
	}
}
