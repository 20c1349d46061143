package platform

import (
	"log/slog"
	"net/http"

	"github.com/aretw0/zenus/pkg/core"
)

// options holds the internal configuration for the zenus service.
type options struct {
	repository   core.Repository
	logger       *slog.Logger
	path         string
	remote       string
	token        string
	readOnly     bool
	httpClient   *http.Client
	errorHandler func(error)
}

// Option defines a functional option for configuring zenus.
type Option func(*options)

func defaultOptions() *options {
	return &options{}
}

// WithPath overrides the local storage root.
// Defaults to DefaultDataDir.
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithRemote switches every operation to the zenus server at url.
// Cannot be combined with WithPath.
func WithRemote(url string) Option {
	return func(o *options) {
		o.remote = url
	}
}

// WithAuth sets the token sent to the remote server.
func WithAuth(token string) Option {
	return func(o *options) {
		o.token = token
	}
}

// WithHTTPClient sets the HTTP client used in remote mode.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithLogger sets the logger for the service and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. a mock).
// If provided, path and remote settings are ignored.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithWatcherErrorHandler registers a callback for errors raised inside the watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithReadOnly enables read-only mode for the local store.
// Mutations return core.ErrReadOnly and no directory is created.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}
