package xhttp

import (
	"net"
	"net/http"
	"strings"
)

// GetRequestIP is the client address. Behind the dealdesk proxy the
// X-Forwarded-For chain is "client, proxy, ...", so the first hop wins.
func GetRequestIP(r *http.Request) string {
	if xff := r.Header.Get(XForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return stripPort(strings.TrimSpace(first))
	}
	return stripPort(r.RemoteAddr)
}

// GetOrgID is the organisation named by the request, or "".
func GetOrgID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(XOrgID))
}

func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
