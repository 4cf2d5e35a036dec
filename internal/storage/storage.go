// Package storage holds the backend's persistence: dashboard queries against
// PostgreSQL, and a backend for rate limits and cached snapshots that is
// either in memory or in Redis.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/garrettladley/dealdesk/internal/store"
)

var ErrNotFound = errors.New("not found")

type RateLimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateLimitResult, error)
}

// SnapshotCache caches assembled dashboard snapshots per organisation.
type SnapshotCache interface {
	// GetSnapshot returns ErrNotFound if nothing is cached or the entry has expired.
	GetSnapshot(ctx context.Context, orgID string) (store.Snapshot, error)
	SetSnapshot(ctx context.Context, orgID string, snap store.Snapshot, ttl time.Duration) error
	DeleteSnapshot(ctx context.Context, orgID string) error
}

type Backend interface {
	RateLimiter
	SnapshotCache

	Close() error

	Ping(ctx context.Context) error
}

// Dashboard answers the per-widget queries for one organisation.
type Dashboard interface {
	Stats(ctx context.Context, orgID string, now time.Time) (store.Stats, error)
	Tasks(ctx context.Context, orgID string, day time.Time, limit int) ([]store.Task, error)
	Pipeline(ctx context.Context, orgID string) ([]store.Stage, error)
	Insight(ctx context.Context, orgID string) (string, error)
}
