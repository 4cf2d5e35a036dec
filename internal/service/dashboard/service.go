// Package dashboard assembles dashboard snapshots for the backend service.
package dashboard

import (
	"context"

	"github.com/garrettladley/dealdesk/internal/store"
)

// DefaultTaskLimit is how many of today's tasks a snapshot carries.
const DefaultTaskLimit = 8

type Service interface {
	// Snapshot returns the full dashboard, served from cache when fresh.
	Snapshot(ctx context.Context, orgID string) (store.Snapshot, error)

	Stats(ctx context.Context, orgID string) (store.Stats, error)
	Tasks(ctx context.Context, orgID string, limit int) ([]store.Task, error)
	Pipeline(ctx context.Context, orgID string) ([]store.Stage, error)
	Insight(ctx context.Context, orgID string) (string, error)
}
