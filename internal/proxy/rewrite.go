package proxy

import (
	"io"
	"net"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/garrettladley/dealdesk/internal/xerrors"
	"github.com/garrettladley/dealdesk/internal/xhttp"
	"github.com/garrettladley/dealdesk/internal/xslog"
)

// APIPrefix is the path prefix the proxy forwards.
const APIPrefix = "/api"

const upstreamTimeout = 30 * time.Second

// Rewriter forwards /api/* to the same path under the origin.
type Rewriter struct {
	origin *url.URL
	client *http.Client
}

type RewriterOption func(*Rewriter)

func WithClient(c *http.Client) RewriterOption {
	return func(r *Rewriter) {
		if c != nil {
			r.client = c
		}
	}
}

func NewRewriter(origin *url.URL, opts ...RewriterOption) *Rewriter {
	r := &Rewriter{
		origin: origin,
		client: &http.Client{Timeout: upstreamTimeout},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Target maps an incoming request URL onto the origin. The origin's own
// path, if any, is kept as a base.
func (rw *Rewriter) Target(in *url.URL) (*url.URL, bool) {
	if in.Path != APIPrefix && !strings.HasPrefix(in.Path, APIPrefix+"/") {
		return nil, false
	}
	out := *rw.origin
	out.Path = singleJoin(rw.origin.Path, in.Path)
	out.RawPath = ""
	out.RawQuery = in.RawQuery
	out.Fragment = ""
	return &out, true
}

func (rw *Rewriter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := xslog.FromContext(ctx)

	target, ok := rw.Target(r.URL)
	if !ok {
		xerrors.WriteError(ctx, w, xerrors.NotFound())
		return
	}

	proxyReq, err := http.NewRequestWithContext(ctx, r.Method, target.String(), r.Body)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(
			xerrors.WithMessage("failed to create upstream request"),
			xerrors.WithCause(err),
		))
		return
	}
	proxyReq.ContentLength = r.ContentLength

	proxyReq.Header = r.Header.Clone()
	xhttp.StripHopByHop(proxyReq.Header)
	setForwarded(proxyReq, r)

	start := time.Now()
	resp, err := rw.client.Do(proxyReq)
	if err != nil {
		logger.ErrorContext(ctx, "failed to proxy request to backend",
			xslog.ErrorGroup(err),
			xslog.Origin(rw.origin.String()),
			xslog.RequestPath(r))
		xerrors.WriteError(ctx, w, xerrors.Upstream(err, xerrors.WithMessage("backend unavailable")))
		return
	}
	defer func() { _ = resp.Body.Close() }()

	logger.DebugContext(ctx, "proxied request to backend",
		xslog.RequestMethod(r),
		xslog.RequestPath(r),
		xslog.HTTPStatus(resp.StatusCode),
		xslog.Duration(time.Since(start)))

	xhttp.StripHopByHop(resp.Header)
	for name, values := range resp.Header {
		if name == xhttp.XRequestID {
			continue
		}
		for _, value := range values {
			w.Header().Add(name, value)
		}
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		logger.ErrorContext(ctx, "failed to copy response body", xslog.ErrorGroup(err))
	}
}

func setForwarded(out, in *http.Request) {
	clientIP, _, err := net.SplitHostPort(in.RemoteAddr)
	if err != nil {
		clientIP = in.RemoteAddr
	}
	if prior := in.Header.Get(xhttp.XForwardedFor); prior != "" {
		clientIP = prior + ", " + clientIP
	}
	if clientIP != "" {
		out.Header.Set(xhttp.XForwardedFor, clientIP)
	}

	out.Header.Set(xhttp.XForwardedHost, in.Host)
	proto := "http"
	if in.TLS != nil {
		proto = "https"
	}
	out.Header.Set(xhttp.XForwardedProto, proto)
}

func singleJoin(base, p string) string {
	if base == "" || base == "/" {
		return p
	}
	joined := path.Join(base, p)
	if strings.HasSuffix(p, "/") && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	return joined
}
