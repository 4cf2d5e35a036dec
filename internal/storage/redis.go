package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/garrettladley/dealdesk/internal/store"
)

var _ Backend = (*RedisBackend)(nil)

const (
	rateLimitKeyPrefix = "ratelimit:"
	snapshotKeyPrefix  = "snapshot:"
)

type RedisBackend struct {
	client     *redis.Client
	rateLimit  int
	rateWindow time.Duration
	now        func() time.Time
}

// NewRedisBackend allows rateLimit requests per key in each one-second window.
func NewRedisBackend(client *redis.Client, rateLimit int) *RedisBackend {
	return &RedisBackend{
		client:     client,
		rateLimit:  rateLimit,
		rateWindow: time.Second,
		now:        time.Now,
	}
}

// Allow counts requests in fixed windows. Keys expire one window after the
// window closes.
func (r *RedisBackend) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	now := r.now()
	window := now.Truncate(r.rateWindow)
	windowKey := rateLimitKeyPrefix + key + ":" + strconv.FormatInt(window.UnixMilli(), 10)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, 2*r.rateWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if incr.Val() <= int64(r.rateLimit) {
		return RateLimitResult{Allowed: true}, nil
	}
	return RateLimitResult{RetryAfter: window.Add(r.rateWindow).Sub(now)}, nil
}

func (r *RedisBackend) GetSnapshot(ctx context.Context, orgID string) (store.Snapshot, error) {
	data, err := r.client.Get(ctx, snapshotKeyPrefix+orgID).Bytes()
	if errors.Is(err, redis.Nil) {
		return store.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snap store.Snapshot
	if err := go_json.Unmarshal(data, &snap); err != nil {
		return store.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, nil
}

func (r *RedisBackend) SetSnapshot(ctx context.Context, orgID string, snap store.Snapshot, ttl time.Duration) error {
	data, err := go_json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := r.client.Set(ctx, snapshotKeyPrefix+orgID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set snapshot: %w", err)
	}
	return nil
}

func (r *RedisBackend) DeleteSnapshot(ctx context.Context, orgID string) error {
	if err := r.client.Del(ctx, snapshotKeyPrefix+orgID).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}

func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
