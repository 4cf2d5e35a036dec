package middleware

import (
	"net/http"

	"github.com/garrettladley/dealdesk/internal/xcontext"
	"github.com/garrettladley/dealdesk/internal/xerrors"
	"github.com/garrettladley/dealdesk/internal/xhttp"
	"github.com/garrettladley/dealdesk/internal/xslog"
)

// OrgID reads the organisation header into the request context and rejects
// requests that omit it.
func OrgID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orgID := xhttp.GetOrgID(r)
		if orgID == "" {
			xerrors.WriteError(r.Context(), w, xerrors.BadRequest(
				xerrors.WithMessage("missing "+xhttp.XOrgID+" header"),
			))
			return
		}
		ctx := xcontext.SetOrgID(r.Context(), orgID)
		ctx = xslog.WithAttrs(ctx, xslog.OrgID(orgID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
