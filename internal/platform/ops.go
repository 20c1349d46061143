package platform

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/zenus/pkg/adapters/fs"
	"github.com/aretw0/zenus/pkg/adapters/remote"
	"github.com/aretw0/zenus/pkg/core"
)

// Init resolves the storage mode and returns the matching repository:
// the remote client when a remote URL is set, the local store otherwise.
// The choice is made once; callers never branch on it afterwards.
func Init(opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.repository != nil {
		return o.repository, nil
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	if o.remote != "" {
		if o.path != "" {
			return nil, fmt.Errorf("%w: a remote url and a local path are mutually exclusive", core.ErrConfig)
		}
		return initRemote(o, logger)
	}
	return initFS(o, logger)
}

func initRemote(o *options, logger *slog.Logger) (core.Repository, error) {
	client, err := remote.NewClient(o.remote,
		remote.WithToken(o.token),
		remote.WithHTTPClient(o.httpClient),
		remote.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	logger.Debug("storage mode resolved", "mode", "remote", "url", o.remote)
	return client, nil
}

func initFS(o *options, logger *slog.Logger) (core.Repository, error) {
	path := o.path
	if path == "" {
		var err error
		path, err = DefaultDataDir()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrConfig, err)
		}
	}

	repo := fs.NewRepository(fs.Config{
		Path:         path,
		ReadOnly:     o.readOnly,
		Logger:       logger,
		ErrorHandler: o.errorHandler,
	})
	logger.Debug("storage mode resolved", "mode", "local", "path", repo.Path, "read_only", o.readOnly)
	return repo, nil
}
