package handler

import (
	"context"
	"net/http"

	"github.com/garrettladley/dealdesk/internal/xhttp"
	"github.com/garrettladley/dealdesk/internal/xslog"
)

// Check is one dependency probed by the health endpoint.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type Health struct {
	checks []Check
}

func NewHealth(checks ...Check) *Health {
	return &Health{checks: checks}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HandleHealth handles GET /health.
func (h *Health) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := healthResponse{Status: "ok"}
	status := http.StatusOK

	for _, c := range h.checks {
		if resp.Checks == nil {
			resp.Checks = make(map[string]string, len(h.checks))
		}
		if err := c.Ping(ctx); err != nil {
			xslog.FromContext(ctx).ErrorContext(ctx, "health check failed",
				xslog.Error(err),
				xslog.Path(c.Name),
			)
			resp.Checks[c.Name] = "unhealthy"
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[c.Name] = "ok"
	}

	xhttp.WriteJSON(w, status, resp)
}
