package storage

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/garrettladley/dealdesk/internal/store"
)

var _ Backend = (*MemoryBackend)(nil)

type cachedSnapshot struct {
	snap    store.Snapshot
	expires time.Time
}

type MemoryBackend struct {
	// Rate limiting
	limiters  map[string]*rate.Limiter
	limiterMu sync.RWMutex
	rateLimit rate.Limit
	rateBurst int

	// Snapshot cache
	snapshots   map[string]cachedSnapshot
	snapshotsMu sync.RWMutex
	now         func() time.Time

	// Cleanup
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewMemoryBackend(ratePerSec float64, burst int) *MemoryBackend {
	m := &MemoryBackend{
		limiters:  make(map[string]*rate.Limiter),
		rateLimit: rate.Limit(ratePerSec),
		rateBurst: burst,
		snapshots: make(map[string]cachedSnapshot),
		now:       time.Now,
		done:      make(chan struct{}),
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

func (m *MemoryBackend) Allow(_ context.Context, key string) (RateLimitResult, error) {
	limiter := m.limiter(key)
	if limiter.Allow() {
		return RateLimitResult{Allowed: true}, nil
	}

	retry := time.Second
	if m.rateLimit > 0 {
		retry = time.Duration(float64(time.Second) / float64(m.rateLimit))
	}
	return RateLimitResult{RetryAfter: max(retry, time.Second)}, nil
}

func (m *MemoryBackend) limiter(key string) *rate.Limiter {
	m.limiterMu.RLock()
	limiter, exists := m.limiters[key]
	m.limiterMu.RUnlock()

	if exists {
		return limiter
	}

	m.limiterMu.Lock()
	defer m.limiterMu.Unlock()

	limiter, exists = m.limiters[key]
	if exists {
		return limiter
	}

	limiter = rate.NewLimiter(m.rateLimit, m.rateBurst)
	m.limiters[key] = limiter
	return limiter
}

func (m *MemoryBackend) GetSnapshot(_ context.Context, orgID string) (store.Snapshot, error) {
	m.snapshotsMu.RLock()
	c, ok := m.snapshots[orgID]
	m.snapshotsMu.RUnlock()

	if !ok || !m.now().Before(c.expires) {
		return store.Snapshot{}, ErrNotFound
	}
	return c.snap, nil
}

func (m *MemoryBackend) SetSnapshot(_ context.Context, orgID string, snap store.Snapshot, ttl time.Duration) error {
	m.snapshotsMu.Lock()
	m.snapshots[orgID] = cachedSnapshot{snap: snap, expires: m.now().Add(ttl)}
	m.snapshotsMu.Unlock()
	return nil
}

func (m *MemoryBackend) DeleteSnapshot(_ context.Context, orgID string) error {
	m.snapshotsMu.Lock()
	delete(m.snapshots, orgID)
	m.snapshotsMu.Unlock()
	return nil
}

func (m *MemoryBackend) Close() error {
	m.closeOnce.Do(func() {
		close(m.done)
	})
	m.wg.Wait()
	return nil
}

func (m *MemoryBackend) Ping(_ context.Context) error {
	return nil
}

func (m *MemoryBackend) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictExpired()
		case <-m.done:
			return
		}
	}
}

func (m *MemoryBackend) evictExpired() {
	m.snapshotsMu.Lock()
	defer m.snapshotsMu.Unlock()

	now := m.now()
	for orgID, c := range m.snapshots {
		if !now.Before(c.expires) {
			delete(m.snapshots, orgID)
		}
	}
}
