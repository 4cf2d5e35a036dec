package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
)

// ErrNoSnapshot is returned by a cache with nothing stored for an org.
var ErrNoSnapshot = errors.New("no cached snapshot")

// SnapshotCache persists the last snapshot per org.
type SnapshotCache interface {
	Load(ctx context.Context, orgID string) (Snapshot, error)
	Save(ctx context.Context, orgID string, snap Snapshot) error
}

var _ SnapshotCache = (*Cache)(nil)

// Cache stores snapshots in the local SQLite database.
type Cache struct {
	db *sql.DB
}

func NewCache(db *sql.DB) *Cache {
	return &Cache{db: db}
}

func (c *Cache) Load(ctx context.Context, orgID string) (Snapshot, error) {
	var payload []byte
	err := c.db.QueryRowContext(ctx,
		"SELECT payload FROM snapshots WHERE org_id = ?", orgID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap Snapshot
	if err := go_json.Unmarshal(payload, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, nil
}

func (c *Cache) Save(ctx context.Context, orgID string, snap Snapshot) error {
	payload, err := go_json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO snapshots (org_id, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(org_id) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`, orgID, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
