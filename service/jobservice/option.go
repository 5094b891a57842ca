package jobservice

import (
	"github.com/go-logr/logr"
	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/model/job"
	"github.com/viant/gridgate/service/dao"
	"github.com/viant/gridgate/service/event"
	"github.com/viant/gridgate/session"
)

// Option represents factory option
type Option func(f *Factory)

// WithInfrastructures sets infrastructure store used for tasks without embedded infrastructure
func WithInfrastructures(loader InfrastructureLoader) Option {
	return func(f *Factory) {
		f.infrastructures = loader
	}
}

// WithBackend registers backend for kind
func WithBackend(kind infra.Kind, backend Backend) Option {
	return func(f *Factory) {
		f.registry.Register(kind, backend)
	}
}

// WithJobs sets job store
func WithJobs(jobs dao.Service[string, job.Job]) Option {
	return func(f *Factory) {
		f.jobs = jobs
	}
}

// WithPublisher sets job state event publisher
func WithPublisher(publisher *event.Publisher[job.Job]) Option {
	return func(f *Factory) {
		f.publisher = publisher
	}
}

// WithSessionOptions sets options applied to every session builder
func WithSessionOptions(opts ...session.Option) Option {
	return func(f *Factory) {
		f.sessionOptions = append(f.sessionOptions, opts...)
	}
}

// WithConfig sets config
func WithConfig(config Config) Option {
	return func(f *Factory) {
		f.config = config
	}
}

// WithLogger sets logger
func WithLogger(logger logr.Logger) Option {
	return func(f *Factory) {
		f.logger = logger
	}
}
