// Package release looks up the latest published dealdesk build.
package release

import (
	"context"
	"fmt"
	"net/http"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/garrettladley/dealdesk/internal/version"
	"github.com/garrettladley/dealdesk/internal/xhttp"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultTimeout = 10 * time.Second

	Owner = "garrettladley"
	Repo  = "dealdesk"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) { client.httpClient = c }
}

func WithBaseURL(url string) Option {
	return func(client *Client) { client.baseURL = url }
}

func New(opts ...Option) *Client {
	c := &Client{
		httpClient: xhttp.NewHTTPClient(xhttp.WithTimeout(defaultTimeout)),
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Latest fetches the newest non-draft release.
func (c *Client) Latest(ctx context.Context) (Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, Owner, Repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Release{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(xhttp.Accept, "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Release{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Release{}, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var r Release
	if err := go_json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return Release{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return r, nil
}

// Check reports the latest release and whether it is newer than current.
func (c *Client) Check(ctx context.Context, current string) (Release, bool, error) {
	r, err := c.Latest(ctx)
	if err != nil {
		return Release{}, false, err
	}
	return r, version.IsNewer(current, r.TagName), nil
}
