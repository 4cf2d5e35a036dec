package middleware

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

const (
	gzipMinSize = 1024
	healthPath  = "/health"
)

var gzipWrapper = mustGzipWrapper()

func mustGzipWrapper() func(http.Handler) http.HandlerFunc {
	wrap, err := gzhttp.NewWrapper(gzhttp.MinSize(gzipMinSize))
	if err != nil {
		panic(err)
	}
	return wrap
}

// Gzip compresses responses of at least 1KB for clients that accept it.
// Health probes are served as is.
func Gzip(next http.Handler) http.Handler {
	compressed := gzipWrapper(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == healthPath {
			next.ServeHTTP(w, r)
			return
		}
		compressed.ServeHTTP(w, r)
	})
}
