package platform

import (
	"log/slog"

	"github.com/aretw0/zenus/pkg/core"
)

// New resolves the repository and wraps it in a core.Service.
//
//	svc, err := platform.New(platform.WithRemote("http://host:8888"), platform.WithAuth(token))
func New(opts ...Option) (*core.Service, error) {
	repo, err := Init(opts...)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	return core.NewService(repo, logger), nil
}
