package proxy

import (
	"log/slog"
	"net/http"

	"github.com/garrettladley/dealdesk/internal/storage"
	"github.com/garrettladley/dealdesk/internal/xhttp"
	"github.com/garrettladley/dealdesk/internal/xhttp/middleware"
)

// Routes wires the proxy. Everything under /api is rate limited per client
// IP, version checked, and rewritten to the origin.
func Routes(logger *slog.Logger, rw *Rewriter, limiter storage.RateLimiter) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(APIPrefix+"/", middleware.Chain(rw,
		middleware.RateLimit(limiter),
		middleware.VersionCheck(logger),
	))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		xhttp.WriteOK(w, map[string]string{"status": "ok"})
	})

	return middleware.Chain(mux,
		middleware.Recovery,
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Logging,
		middleware.SecurityHeaders,
		middleware.Gzip,
	)
}
