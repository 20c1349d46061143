// Package remote implements core.Repository against another zenus server over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/aretw0/introspection"

	"github.com/aretw0/zenus/pkg/core"
)

// maxErrorBody bounds how much of a failed response is kept for the error message.
const maxErrorBody = 4 << 10

// Client issues one HTTP request per repository operation, using the same
// routes the zenus server exposes.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
	logger  *slog.Logger

	requests atomic.Int64
	failures atomic.Int64
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the value sent verbatim in the Authorization header.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces http.DefaultClient, e.g. to set a timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the server at baseURL (e.g. "http://host:8888").
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid remote url %q: %v", core.ErrConfig, baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: remote url %q must use http or https", core.ErrConfig, baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: remote url %q has no host", core.ErrConfig, baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    http.DefaultClient,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// List fetches one partition from the server.
func (c *Client) List(ctx context.Context, p core.Partition) ([]core.NoteBlock, error) {
	path := "/notes"
	switch p {
	case core.Active:
	case core.Archived:
		path = "/notes/archive"
	default:
		return nil, fmt.Errorf("unknown partition %q", p)
	}

	notes := []core.NoteBlock{}
	if err := c.do(ctx, "list", http.MethodGet, path, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Put sends the note to the server.
func (c *Client) Put(ctx context.Context, n core.NoteBlock) error {
	return c.do(ctx, "put", http.MethodPost, "/notes", n, nil)
}

// Delete removes the note from the given partition on the server.
func (c *Client) Delete(ctx context.Context, id string, p core.Partition) error {
	switch p {
	case core.Active:
		return c.do(ctx, "delete", http.MethodDelete, notePath(id), nil, nil)
	case core.Archived:
		return c.do(ctx, "delete", http.MethodDelete, notePath(id)+"/archive", nil, nil)
	default:
		return fmt.Errorf("unknown partition %q", p)
	}
}

// Archive asks the server to archive the note.
func (c *Client) Archive(ctx context.Context, id string) error {
	return c.do(ctx, "archive", http.MethodPost, notePath(id)+"/archive", nil, nil)
}

// Unarchive asks the server to restore the note.
func (c *Client) Unarchive(ctx context.Context, id string) error {
	return c.do(ctx, "unarchive", http.MethodPost, notePath(id)+"/unarchive", nil, nil)
}

// Reorder sends the whole batch in one request.
func (c *Client) Reorder(ctx context.Context, updates []core.OrderUpdate) error {
	if updates == nil {
		updates = []core.OrderUpdate{}
	}
	return c.do(ctx, "reorder", http.MethodPost, "/notes/reorder", updates, nil)
}

func notePath(id string) string {
	return "/notes/" + url.PathEscape(id)
}

// do performs a request and decodes a JSON answer into out when out is non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	c.requests.Add(1)

	endpoint := c.baseURL.String() + path

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	c.logger.Debug("remote request", "op", op, "method", method, "url", endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		c.failures.Add(1)
		return &core.RemoteError{Op: op, Method: method, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.failures.Add(1)
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &core.RemoteError{
			Op:         op,
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.failures.Add(1)
		return &core.RemoteError{
			Op:         op,
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("invalid response body: %w", err),
		}
	}
	return nil
}

// ClientState exposes internal state for observability.
type ClientState struct {
	BaseURL  string `json:"base_url"`
	HasToken bool   `json:"has_token"`
	Requests int64  `json:"requests"`
	Failures int64  `json:"failures"`
}

// State implements introspection.Introspectable.
func (c *Client) State() any {
	return ClientState{
		BaseURL:  c.baseURL.String(),
		HasToken: c.token != "",
		Requests: c.requests.Load(),
		Failures: c.failures.Load(),
	}
}

// ComponentType implements introspection.Component.
func (c *Client) ComponentType() string {
	return "remote-client"
}

var _ core.Repository = (*Client)(nil)
var _ introspection.Introspectable = (*Client)(nil)
var _ introspection.Component = (*Client)(nil)
