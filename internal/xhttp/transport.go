package xhttp

import (
	"fmt"
	"net/http"

	"github.com/garrettladley/dealdesk/internal/version"
)

type dealdeskTransport struct {
	base  http.RoundTripper
	orgID string
}

var _ http.RoundTripper = (*dealdeskTransport)(nil)

func (t *dealdeskTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", "dealdesk/"+version.Get())
	req.Header.Set(version.Header, version.Get())
	if t.orgID != "" {
		req.Header.Set(XOrgID, t.orgID)
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform round trip: %w", err)
	}
	return resp, nil
}

type TransportOption func(*dealdeskTransport)

// WithOrgID stamps every outgoing request with the organisation header.
func WithOrgID(orgID string) TransportOption {
	return func(t *dealdeskTransport) { t.orgID = orgID }
}

func WithBase(base http.RoundTripper) TransportOption {
	return func(t *dealdeskTransport) {
		if base != nil {
			t.base = base
		}
	}
}

// NewTransport returns an http.RoundTripper with standard dealdesk headers.
func NewTransport(opts ...TransportOption) http.RoundTripper {
	t := &dealdeskTransport{base: http.DefaultTransport}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
