package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garrettladley/dealdesk/internal/storage"
	"github.com/garrettladley/dealdesk/internal/xcontext"
	"github.com/garrettladley/dealdesk/internal/xhttp"
	"github.com/garrettladley/dealdesk/internal/xslog"
)

type stubLimiter struct {
	result storage.RateLimitResult
	err    error
	keys   []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (storage.RateLimitResult, error) {
	s.keys = append(s.keys, key)
	return s.result, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		limiter    *stubLimiter
		wantStatus int
		wantRetry  string
	}{
		{
			name:       "allowed",
			limiter:    &stubLimiter{result: storage.RateLimitResult{Allowed: true}},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "limited",
			limiter:    &stubLimiter{result: storage.RateLimitResult{RetryAfter: 2 * time.Second}},
			wantStatus: http.StatusTooManyRequests,
			wantRetry:  "2",
		},
		{
			name:       "backend failure",
			limiter:    &stubLimiter{err: errors.New("redis down")},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/api/stats", nil)
			req.RemoteAddr = "198.51.100.4:5555"
			rec := httptest.NewRecorder()

			RateLimit(tt.limiter)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, []string{"198.51.100.4"}, tt.limiter.keys)
			if tt.wantRetry != "" {
				assert.Equal(t, tt.wantRetry, rec.Header().Get("Retry-After"))
				assert.Equal(t, reasonIPRateLimit, rec.Header().Get(xhttp.XRateLimitReason))
			}
		})
	}
}

func TestOrgID(t *testing.T) {
	t.Parallel()

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/api/stats", nil)
		rec := httptest.NewRecorder()
		OrgID(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("header stored in context", func(t *testing.T) {
		t.Parallel()

		var got string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = xcontext.GetOrgID(r.Context())
			w.WriteHeader(http.StatusNoContent)
		})

		req := httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/api/stats", nil)
		req.Header.Set(xhttp.XOrgID, "acme")
		rec := httptest.NewRecorder()
		OrgID(next).ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "acme", got)
	})
}

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(okHandler(), mark("first"), mark("second"), mark("third"))
	req := httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestRequestIDHeader(t *testing.T) {
	t.Parallel()

	var fromCtx string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx, _ = xcontext.GetRequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequestWithContext(t.Context(), http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	RequestID()(next).ServeHTTP(rec, req)

	require.NotEmpty(t, fromCtx)
	assert.Equal(t, fromCtx, rec.Header().Get(xhttp.XRequestID))
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	h := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("widget exploded")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	SecurityHeaders(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	assert.Equal(t, "nosniff", rec.Header().Get(xhttp.XContentTypeOpts))
	assert.Equal(t, "private, no-store", rec.Header().Get(xhttp.CacheControl))
}

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		status    int
		wantLog   bool
		wantLevel string
	}{
		{name: "api request", path: "/api/tasks", status: http.StatusOK, wantLog: true, wantLevel: `"level":"INFO"`},
		{name: "server error", path: "/api/tasks", status: http.StatusBadGateway, wantLog: true, wantLevel: `"level":"WARN"`},
		{name: "health probe", path: healthPath, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			h := Logging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("hello"))
			}))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req = req.WithContext(xslog.WithLogger(req.Context(), logger))
			h.ServeHTTP(httptest.NewRecorder(), req)

			if !tt.wantLog {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.wantLevel)
			assert.Contains(t, buf.String(), `"bytes":5`)
		})
	}
}

func TestLoggerTagsOrg(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	h := Logger(base)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		xslog.FromContext(r.Context()).InfoContext(r.Context(), "hit")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set(xhttp.XOrgID, "acme")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"acme"`)
}
