package handler

import (
	"net/http"
	"strconv"

	"github.com/garrettladley/dealdesk/internal/service/dashboard"
	"github.com/garrettladley/dealdesk/internal/validator"
	"github.com/garrettladley/dealdesk/internal/xcontext"
	"github.com/garrettladley/dealdesk/internal/xerrors"
	"github.com/garrettladley/dealdesk/internal/xhttp"
	"github.com/garrettladley/dealdesk/internal/xslog"
)

const maxTaskLimit = 50

type Dashboard struct {
	service dashboard.Service
}

func NewDashboard(service dashboard.Service) *Dashboard {
	return &Dashboard{service: service}
}

type insightResponse struct {
	Insight string `json:"insight"`
}

// HandleSnapshot handles GET /api/dashboard.
func (h *Dashboard) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID, ok := orgFromRequest(w, r)
	if !ok {
		return
	}

	snap, err := h.service.Snapshot(ctx, orgID)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(
			xerrors.WithMessage("failed to load dashboard"),
			xerrors.WithCause(err),
		))
		return
	}
	xhttp.WriteOK(w, snap)
}

// HandleStats handles GET /api/stats.
func (h *Dashboard) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID, ok := orgFromRequest(w, r)
	if !ok {
		return
	}

	stats, err := h.service.Stats(ctx, orgID)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(
			xerrors.WithMessage("failed to load stats"),
			xerrors.WithCause(err),
		))
		return
	}
	xhttp.WriteOK(w, stats)
}

// HandleTasks handles GET /api/tasks.
// Query params: limit (1-50, default 8)
func (h *Dashboard) HandleTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID, ok := orgFromRequest(w, r)
	if !ok {
		return
	}

	q := tasksQuery{raw: r.URL.Query().Get("limit")}
	if verr := validator.Validate(&q); verr != nil {
		xerrors.WriteError(ctx, w, verr)
		return
	}

	tasks, err := h.service.Tasks(ctx, orgID, q.limit)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(
			xerrors.WithMessage("failed to load tasks"),
			xerrors.WithCause(err),
		))
		return
	}

	xslog.FromContext(ctx).DebugContext(ctx, "fetched tasks", xslog.Count(len(tasks)))
	xhttp.WriteOK(w, tasks)
}

// HandlePipeline handles GET /api/pipeline.
func (h *Dashboard) HandlePipeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID, ok := orgFromRequest(w, r)
	if !ok {
		return
	}

	stages, err := h.service.Pipeline(ctx, orgID)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(
			xerrors.WithMessage("failed to load pipeline"),
			xerrors.WithCause(err),
		))
		return
	}
	xhttp.WriteOK(w, stages)
}

// HandleInsight handles GET /api/insight.
func (h *Dashboard) HandleInsight(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID, ok := orgFromRequest(w, r)
	if !ok {
		return
	}

	insight, err := h.service.Insight(ctx, orgID)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(
			xerrors.WithMessage("failed to load insight"),
			xerrors.WithCause(err),
		))
		return
	}
	xhttp.WriteOK(w, insightResponse{Insight: insight})
}

type tasksQuery struct {
	raw   string
	limit int
}

func (q *tasksQuery) Validate() map[string]string {
	q.limit = dashboard.DefaultTaskLimit
	if q.raw == "" {
		return nil
	}
	l, err := strconv.Atoi(q.raw)
	if err != nil || l <= 0 || l > maxTaskLimit {
		return map[string]string{
			"limit": "must be an integer between 1 and " + strconv.Itoa(maxTaskLimit),
		}
	}
	q.limit = l
	return nil
}

func orgFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	orgID, ok := xcontext.GetOrgID(r.Context())
	if !ok {
		xerrors.WriteError(r.Context(), w, xerrors.BadRequest(xerrors.WithMessage("missing organisation")))
		return "", false
	}
	return orgID, true
}
