package middleware

import (
	"net/http"

	"github.com/garrettladley/dealdesk/internal/xcontext"
)

// ShutdownContext flags requests that arrive after the server's base context
// was cancelled, so errors they hit are not reported as failures.
func ShutdownContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Context().Err() != nil {
			r = r.WithContext(xcontext.SetShutdownInProgress(r.Context(), true))
		}
		next.ServeHTTP(w, r)
	})
}
