package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garrettladley/dealdesk/internal/server/handler"
	"github.com/garrettladley/dealdesk/internal/service/dashboard"
	"github.com/garrettladley/dealdesk/internal/storage"
	"github.com/garrettladley/dealdesk/internal/store"
	"github.com/garrettladley/dealdesk/internal/xhttp"
)

var now = time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, checks ...handler.Check) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := dashboard.NewCached(storage.Demo{}, nil, 0, dashboard.WithClock(func() time.Time { return now }))
	srv := httptest.NewServer(Routes(logger, handler.NewDashboard(svc), handler.NewHealth(checks...)))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path, orgID string) *http.Response {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	if orgID != "" {
		req.Header.Set(xhttp.XOrgID, orgID)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, go_json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestDashboardEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	resp := get(t, srv, "/api/dashboard", "acme")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got := decode[store.Snapshot](t, resp)
	if diff := cmp.Diff(storage.DemoSnapshot(now), got); diff != "" {
		t.Errorf("GET /api/dashboard mismatch (-want +got):\n%s", diff)
	}
	assert.NotEmpty(t, resp.Header.Get(xhttp.XRequestID))
}

func TestEndpointsRequireOrg(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	for _, path := range []string{"/api/dashboard", "/api/stats", "/api/tasks", "/api/pipeline", "/api/insight"} {
		resp := get(t, srv, path, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestPartialEndpoints(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	ctx := context.Background()
	demo := storage.Demo{}

	t.Run("stats", func(t *testing.T) {
		t.Parallel()
		resp := get(t, srv, "/api/stats", "acme")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		want, _ := demo.Stats(ctx, "acme", now)
		assert.Equal(t, want, decode[store.Stats](t, resp))
	})

	t.Run("tasks with limit", func(t *testing.T) {
		t.Parallel()
		resp := get(t, srv, "/api/tasks?limit=2", "acme")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, decode[[]store.Task](t, resp), 2)
	})

	t.Run("tasks with bad limit", func(t *testing.T) {
		t.Parallel()
		resp := get(t, srv, "/api/tasks?limit=500", "acme")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("pipeline", func(t *testing.T) {
		t.Parallel()
		resp := get(t, srv, "/api/pipeline", "acme")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, decode[[]store.Stage](t, resp), len(storage.PipelineStages))
	})

	t.Run("insight", func(t *testing.T) {
		t.Parallel()
		resp := get(t, srv, "/api/insight", "acme")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		want, _ := demo.Insight(ctx, "acme")
		assert.Equal(t, want, decode[map[string]string](t, resp)["insight"])
	})
}

func TestHealth(t *testing.T) {
	t.Parallel()

	t.Run("healthy", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, handler.Check{Name: "cache", Ping: func(context.Context) error { return nil }})
		resp := get(t, srv, "/health", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unhealthy", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, handler.Check{Name: "postgres", Ping: func(context.Context) error { return errors.New("refused") }})
		resp := get(t, srv, "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "unhealthy", decode[map[string]any](t, resp)["status"])
	})
}
