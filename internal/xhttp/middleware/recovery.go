package middleware

import (
	"net/http"

	"github.com/garrettladley/dealdesk/internal/xerrors"
	"github.com/garrettladley/dealdesk/internal/xslog"
)

// Recovery turns a handler panic into the API's JSON 500 body.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				ctx := r.Context()
				xslog.FromContext(ctx).ErrorContext(ctx, "panic recovered",
					xslog.RequestGroup(r),
					xslog.ErrorGroupWithStack(err),
				)
				xerrors.WriteError(ctx, w, xerrors.Internal())
			}
		}()
		next.ServeHTTP(w, r)
	})
}
