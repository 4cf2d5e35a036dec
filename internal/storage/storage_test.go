package storage

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/garrettladley/dealdesk/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWeekStart(t *testing.T) {
	t.Parallel()

	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   time.Time
	}{
		{name: "monday midnight", in: monday},
		{name: "wednesday afternoon", in: time.Date(2024, 3, 6, 15, 30, 0, 0, time.UTC)},
		{name: "sunday night", in: time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)},
		{name: "non-utc zone", in: time.Date(2024, 3, 5, 1, 0, 0, 0, time.FixedZone("CET", 3600))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := WeekStart(tt.in); !got.Equal(monday) {
				t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, monday)
			}
		})
	}
}

func TestMergeStages(t *testing.T) {
	t.Parallel()

	got := MergeStages(map[string]int{"listed": 7, "sold": 2, "archived": 40})
	want := []store.Stage{
		{Key: "prospect", Label: "Prospect", Count: 0},
		{Key: "listed", Label: "Listed", Count: 7},
		{Key: "offer", Label: "Under offer", Count: 0},
		{Key: "sold", Label: "Sold", Count: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MergeStages() mismatch (-want +got):\n%s", diff)
	}
	assert.Zero(t, PipelineStages[1].Count, "MergeStages must not mutate PipelineStages")
}

func TestMemoryBackendAllow(t *testing.T) {
	t.Parallel()

	m := NewMemoryBackend(1, 2)
	t.Cleanup(func() { _ = m.Close() })

	for i := range 2 {
		res, err := m.Allow(t.Context(), "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d within burst", i)
	}

	res, err := m.Allow(t.Context(), "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, time.Second, res.RetryAfter)

	res, err = m.Allow(t.Context(), "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, res.Allowed, "keys are limited independently")
}

func TestMemoryBackendSnapshots(t *testing.T) {
	t.Parallel()

	m := NewMemoryBackend(10, 10)
	t.Cleanup(func() { _ = m.Close() })

	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	_, err := m.GetSnapshot(t.Context(), "acme")
	require.ErrorIs(t, err, ErrNotFound)

	snap := store.Snapshot{Stats: store.Stats{LeadsThisWeek: 12}, Insight: "steady week"}
	require.NoError(t, m.SetSnapshot(t.Context(), "acme", snap, time.Minute))

	got, err := m.GetSnapshot(t.Context(), "acme")
	require.NoError(t, err)
	if diff := cmp.Diff(snap, got); diff != "" {
		t.Errorf("GetSnapshot() mismatch (-want +got):\n%s", diff)
	}

	now = now.Add(time.Minute)
	_, err = m.GetSnapshot(t.Context(), "acme")
	require.ErrorIs(t, err, ErrNotFound, "entry expires at its ttl")

	m.evictExpired()
	assert.Empty(t, m.snapshots)

	require.NoError(t, m.SetSnapshot(t.Context(), "acme", snap, time.Hour))
	require.NoError(t, m.DeleteSnapshot(t.Context(), "acme"))
	_, err = m.GetSnapshot(t.Context(), "acme")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBackendCloseTwice(t *testing.T) {
	t.Parallel()

	m := NewMemoryBackend(1, 1)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}
