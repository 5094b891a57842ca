package proxy

import (
	"github.com/go-logr/logr"
	"github.com/viant/afs"
)

// Option represents service option
type Option func(s *Service)

// WithConfig sets retrieval settings
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithFS sets file system used to read the proxy
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithLogger sets logger
func WithLogger(logger logr.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}
