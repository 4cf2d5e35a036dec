package middleware

import (
	"log/slog"
	"net/http"

	"github.com/garrettladley/dealdesk/internal/xcontext"
	"github.com/garrettladley/dealdesk/internal/xhttp"
	"github.com/garrettladley/dealdesk/internal/xslog"
)

// Logger puts a request-scoped logger into the context, tagged with the
// request id and, when the client sent one, the organisation.
// Must run after RequestID.
func Logger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := base
			if id, ok := xcontext.GetRequestID(r.Context()); ok {
				logger = logger.With(xslog.RequestID(id))
			}
			if org := xhttp.GetOrgID(r); org != "" {
				logger = logger.With(xslog.OrgID(org))
			}
			next.ServeHTTP(w, r.WithContext(xslog.WithLogger(r.Context(), logger)))
		})
	}
}
