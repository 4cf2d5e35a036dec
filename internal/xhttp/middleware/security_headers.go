package middleware

import (
	"net/http"

	"github.com/garrettladley/dealdesk/internal/xhttp"
)

// SecurityHeaders sets the standard hardening headers. Dashboard data is per
// organisation, so shared caches must not keep it.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set(xhttp.XContentTypeOpts, "nosniff")
		h.Set(xhttp.XFrameOpts, "DENY")
		h.Set(xhttp.ReferrerPolicy, "no-referrer")
		h.Set(xhttp.CacheControl, "private, no-store")
		next.ServeHTTP(w, r)
	})
}
