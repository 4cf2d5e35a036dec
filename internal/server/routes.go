package server

import (
	"log/slog"
	"net/http"

	"github.com/garrettladley/dealdesk/internal/server/handler"
	"github.com/garrettladley/dealdesk/internal/xhttp/middleware"
)

// Routes wires the backend's endpoints. Every /api route requires the
// organisation header.
func Routes(logger *slog.Logger, dash *handler.Dashboard, health *handler.Health) http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /api/dashboard", dash.HandleSnapshot)
	api.HandleFunc("GET /api/stats", dash.HandleStats)
	api.HandleFunc("GET /api/tasks", dash.HandleTasks)
	api.HandleFunc("GET /api/pipeline", dash.HandlePipeline)
	api.HandleFunc("GET /api/insight", dash.HandleInsight)

	mux := http.NewServeMux()
	mux.Handle("/api/", middleware.Chain(api,
		middleware.VersionCheck(logger),
		middleware.OrgID,
	))
	mux.HandleFunc("GET /health", health.HandleHealth)

	return middleware.Chain(mux,
		middleware.Recovery,
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Logging,
		middleware.ShutdownContext,
		middleware.SecurityHeaders,
		middleware.Gzip,
	)
}
