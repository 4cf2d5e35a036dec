package xerrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/garrettladley/dealdesk/internal/xhttp"
	go_json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func TestWriteError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   errorResponse
		wantHeader map[string]string
	}{
		{
			name:       "plain error becomes internal",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   errorResponse{Message: "internal server error"},
		},
		{
			name:       "bad request with message",
			err:        BadRequest(WithMessage("missing org")),
			wantStatus: http.StatusBadRequest,
			wantBody:   errorResponse{Message: "missing org"},
		},
		{
			name:       "wrapped app error keeps status",
			err:        errors.Join(errors.New("ctx"), NotFound()),
			wantStatus: http.StatusNotFound,
			wantBody:   errorResponse{Message: "not found"},
		},
		{
			name:       "validation fields",
			err:        Validation(map[string]string{"limit": "must be positive"}),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody: errorResponse{
				Message: "unprocessable entity",
				Fields:  map[string]string{"limit": "must be positive"},
			},
		},
		{
			name:       "rate limit headers",
			err:        TooManyRequests(WithRetryAfter(3*time.Second), WithReason("ip")),
			wantStatus: http.StatusTooManyRequests,
			wantBody:   errorResponse{Message: "too many requests"},
			wantHeader: map[string]string{
				"Retry-After":          "3",
				xhttp.XRateLimitReason: "ip",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			WriteError(t.Context(), rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var got errorResponse
			if err := go_json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if diff := cmp.Diff(tt.wantBody, got); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
			for k, v := range tt.wantHeader {
				if h := rec.Header().Get(k); h != v {
					t.Errorf("header %s = %q, want %q", k, h, v)
				}
			}
		})
	}
}
