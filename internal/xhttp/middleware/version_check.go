package middleware

import (
	"log/slog"
	"net/http"

	"github.com/garrettladley/dealdesk/internal/version"
	"github.com/garrettladley/dealdesk/internal/xhttp"
	"github.com/garrettladley/dealdesk/internal/xslog"
	go_json "github.com/goccy/go-json"
)

func VersionCheck(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientVersion := r.Header.Get(version.Header)
			if clientVersion == "" {
				clientVersion = "unknown"
			}

			if verr := version.CheckCompatibility(clientVersion); verr != nil {
				logger.WarnContext(
					r.Context(),
					"client version incompatible",
					xslog.ClientVersion(verr.ClientVersion),
					xslog.ProxyVersion(verr.ProxyVersion),
					xslog.MinVersion(verr.MinVersion),
					xslog.RequestPath(r),
				)

				xhttp.SetHeaderContentTypeApplicationJSON(w)
				w.WriteHeader(http.StatusUpgradeRequired)

				if err := go_json.NewEncoder(w).Encode(map[string]any{
					"error":       "incompatible_version",
					"message":     verr.Error(),
					"min_version": verr.MinVersion,
				}); err != nil {
					logger.ErrorContext(r.Context(), "failed to encode version response",
						xslog.Error(err),
						xslog.RequestPath(r),
					)
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
