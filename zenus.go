package zenus

import (
	"log/slog"
	"net/http"

	"github.com/aretw0/zenus/internal/platform"
	"github.com/aretw0/zenus/pkg/core"
)

// --- Types ---

// NoteBlock is a public alias for the stored note.
type NoteBlock = core.NoteBlock

// OrderUpdate is a public alias for one reorder instruction.
type OrderUpdate = core.OrderUpdate

// Partition is a public alias for the storage partition.
type Partition = core.Partition

const (
	Active   = core.Active
	Archived = core.Archived
)

// --- Configuration ---

// Option defines a functional option for configuring zenus.
type Option = platform.Option

// WithPath overrides the local storage root.
func WithPath(path string) Option {
	return platform.WithPath(path)
}

// WithRemote sends every operation to the zenus server at url.
func WithRemote(url string) Option {
	return platform.WithRemote(url)
}

// WithAuth sets the token used against the remote server.
func WithAuth(token string) Option {
	return platform.WithAuth(token)
}

// WithHTTPClient sets the HTTP client used in remote mode.
func WithHTTPClient(hc *http.Client) Option {
	return platform.WithHTTPClient(hc)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithReadOnly enables read-only mode for the local store.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithWatcherErrorHandler registers a callback for errors inside the watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// New creates a zenus Service backed by the local store or a remote server.
func New(opts ...Option) (*core.Service, error) {
	return platform.New(opts...)
}

// Init resolves the storage mode and returns the bare repository.
func Init(opts ...Option) (core.Repository, error) {
	return platform.Init(opts...)
}

// DefaultDataDir returns the per-user directory used when no path is given.
func DefaultDataDir() (string, error) {
	return platform.DefaultDataDir()
}
