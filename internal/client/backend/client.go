// Package backend is the TUI's client for the dealdesk API.
package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	go_json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/dealdesk/internal/store"
	"github.com/garrettladley/dealdesk/internal/xhttp"
	"github.com/garrettladley/dealdesk/internal/xslog"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

var _ store.Fetcher = (*Client)(nil)

type clientConfig struct {
	orgID     string
	logger    *slog.Logger
	timeout   time.Duration
	transport http.RoundTripper
}

type Option func(*clientConfig)

func WithOrgID(orgID string) Option {
	return func(cfg *clientConfig) { cfg.orgID = orgID }
}

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *clientConfig) { cfg.logger = logger }
}

func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) { cfg.timeout = d }
}

// WithTransport replaces the base round tripper the dealdesk headers are
// layered on.
func WithTransport(rt http.RoundTripper) Option {
	return func(cfg *clientConfig) { cfg.transport = rt }
}

func New(baseURL string, opts ...Option) *Client {
	cfg := &clientConfig{
		logger:  slog.Default(),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	transport := xhttp.NewTransport(
		xhttp.WithOrgID(cfg.orgID),
		xhttp.WithBase(cfg.transport),
	)

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: xhttp.NewHTTPClient(
			xhttp.WithTransport(transport),
			xhttp.WithTimeout(cfg.timeout),
		),
		logger: cfg.logger,
		now:    time.Now,
	}
}

// FetchDashboard loads every widget's data in parallel. Any failure fails
// the whole snapshot so the store never mixes old and new data.
func (c *Client) FetchDashboard(ctx context.Context) (store.Snapshot, error) {
	var snap store.Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := c.Stats(gctx)
		snap.Stats = stats
		return err
	})
	g.Go(func() error {
		tasks, err := c.Tasks(gctx, 0)
		snap.Tasks = tasks
		return err
	})
	g.Go(func() error {
		stages, err := c.Pipeline(gctx)
		snap.Pipeline = stages
		return err
	})
	g.Go(func() error {
		insight, err := c.Insight(gctx)
		snap.Insight = insight
		return err
	})
	if err := g.Wait(); err != nil {
		return store.Snapshot{}, err
	}

	snap.UpdatedAt = c.now().UTC()
	c.logger.DebugContext(ctx, "fetched dashboard",
		xslog.Count(len(snap.Tasks)),
	)
	return snap, nil
}

// Snapshot loads the assembled dashboard in a single request.
func (c *Client) Snapshot(ctx context.Context) (store.Snapshot, error) {
	var snap store.Snapshot
	if err := c.do(ctx, "/api/dashboard", nil, &snap); err != nil {
		return store.Snapshot{}, err
	}
	return snap, nil
}

func (c *Client) Stats(ctx context.Context) (store.Stats, error) {
	var stats store.Stats
	if err := c.do(ctx, "/api/stats", nil, &stats); err != nil {
		return store.Stats{}, err
	}
	return stats, nil
}

// Tasks lists today's tasks. A non-positive limit uses the server default.
func (c *Client) Tasks(ctx context.Context, limit int) ([]store.Task, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}
	var tasks []store.Task
	if err := c.do(ctx, "/api/tasks", query, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) Pipeline(ctx context.Context) ([]store.Stage, error) {
	var stages []store.Stage
	if err := c.do(ctx, "/api/pipeline", nil, &stages); err != nil {
		return nil, err
	}
	return stages, nil
}

func (c *Client) Insight(ctx context.Context) (string, error) {
	var resp struct {
		Insight string `json:"insight"`
	}
	if err := c.do(ctx, "/api/insight", nil, &resp); err != nil {
		return "", err
	}
	return resp.Insight, nil
}

func (c *Client) do(ctx context.Context, path string, query url.Values, result any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return parseAPIError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if err := go_json.NewDecoder(bytes.NewReader(body)).Decode(result); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
