package proxy

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/viant/afs"
	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/tracing"
)

// Service reads proxy credentials from remote locations (http, https, file, mem, ...)
type Service struct {
	fs     afs.Service
	config Config
	logger logr.Logger
}

// Fetch reads the whole proxy body from the source location
func (s *Service) Fetch(ctx context.Context, source *infra.ProxySource) (ret string, err error) {
	if source == nil {
		return "", infra.NewConfigurationError("", "no proxy location in configuration parameters", nil)
	}
	location, err := source.Location()
	if err != nil {
		return "", err
	}
	ctx, span := tracing.StartSpan(ctx, "proxy.fetch", "CLIENT")
	defer func() { tracing.EndSpan(span, err) }()

	s.logger.V(1).Info("accessing the proxy", "location", location)
	data, err := s.download(ctx, location)
	if err != nil {
		s.logger.Error(err, "impossible to retrieve the remote proxy certificate", "location", location)
		return "", infra.NewNetworkError("", fmt.Sprintf("impossible to retrieve the remote proxy certificate from: %v", location), err)
	}
	if len(data) == 0 {
		return "", infra.NewContextError("", fmt.Sprintf("remote proxy %v was empty", location), nil)
	}
	return string(data), nil
}

func (s *Service) download(ctx context.Context, location string) ([]byte, error) {
	var err error
	for attempt := 0; attempt <= s.config.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.config.RetryDelay()):
			}
			s.logger.V(1).Info("retrying proxy download", "location", location, "attempt", attempt)
		}
		var data []byte
		if data, err = s.downloadOnce(ctx, location); err == nil {
			return data, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}
	}
	return nil, err
}

func (s *Service) downloadOnce(ctx context.Context, location string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, s.config.Timeout())
	defer cancel()
	return s.fs.DownloadWithURL(timeoutCtx, location)
}

// New creates a proxy service
func New(opts ...Option) *Service {
	ret := &Service{config: DefaultConfig(), logger: logr.Discard()}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	if ret.config.TimeoutMs <= 0 {
		ret.config.TimeoutMs = DefaultConfig().TimeoutMs
	}
	return ret
}
