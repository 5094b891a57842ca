package jobservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/model/job"
	"github.com/viant/gridgate/service/dao"
	jobmemory "github.com/viant/gridgate/service/dao/job/memory"
	"github.com/viant/gridgate/service/event"
	"github.com/viant/gridgate/session"
	"github.com/viant/gridgate/tracing"
)

// InfrastructureLoader loads infrastructure by id
type InfrastructureLoader interface {
	Load(ctx context.Context, id string) (*infra.Infrastructure, error)
}

// Factory binds tasks to job submission handles
type Factory struct {
	infrastructures InfrastructureLoader
	registry        *Registry
	jobs            dao.Service[string, job.Job]
	publisher       *event.Publisher[job.Job]
	sessionOptions  []session.Option
	config          Config
	logger          logr.Logger
}

// Registry returns backend registry
func (f *Factory) Registry() *Registry {
	return f.registry
}

// Jobs returns job store shared by all handles
func (f *Factory) Jobs() dao.Service[string, job.Job] {
	return f.jobs
}

// Create resolves task infrastructure, opens a session and returns a handle bound to its endpoint
func (f *Factory) Create(ctx context.Context, task *infra.Task) (ret Service, err error) {
	ctx, span := tracing.StartSpan(ctx, "jobservice.create", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	if task == nil {
		return nil, infra.NewConfigurationError("", "task was nil", nil)
	}
	infrastructure, err := f.infrastructure(ctx, task)
	if err != nil {
		f.logger.Error(err, "failed to resolve infrastructure", "task", task.ID)
		return nil, err
	}
	span.WithAttributes(map[string]string{"task": task.ID, "infrastructure": infrastructure.ID})
	if !infrastructure.IsEnabled() {
		return nil, infra.NewConfigurationError(infrastructure.ID, "infrastructure is disabled", nil)
	}
	options := append(append([]session.Option{}, f.sessionOptions...), session.WithUser(task.User), session.WithLogger(f.logger))
	aSession, err := session.NewBuilder(infrastructure, options...).Build(ctx)
	if err != nil {
		return nil, err
	}
	binding := &Binding{Task: task, Infrastructure: infrastructure, Session: aSession}
	if binding.Endpoint, err = infrastructure.Endpoint(); err != nil {
		_ = aSession.Close()
		return nil, infra.WithInfrastructure(err, infrastructure.ID)
	}
	backend, ok := f.registry.Lookup(aSession.Kind)
	if !ok {
		_ = aSession.Close()
		return nil, infra.NewUnsupportedError(infrastructure.ID, fmt.Sprintf("no job service backend for %v, available: %v", aSession.Kind, f.registry.Kinds()))
	}
	runner, err := backend.Open(ctx, binding)
	if err != nil {
		_ = aSession.Close()
		if infra.CategoryOf(err) == "" {
			err = infra.NewContextError(infrastructure.ID, fmt.Sprintf("failed to open job service %v", binding.Endpoint), err)
		}
		return nil, infra.WithInfrastructure(err, infrastructure.ID)
	}
	f.logger.Info("job service created", "task", task.ID, "infrastructure", infrastructure.ID, "kind", aSession.Kind, "endpoint", binding.Endpoint.String())
	return NewHandle(binding, runner, f.jobs, f.publisher, f.config, f.logger), nil
}

func (f *Factory) infrastructure(ctx context.Context, task *infra.Task) (*infra.Infrastructure, error) {
	if task.Infrastructure != nil {
		return task.Infrastructure, nil
	}
	if task.InfrastructureID == "" {
		return nil, infra.NewConfigurationError("", fmt.Sprintf("task %v has no infrastructure", task.ID), nil)
	}
	if f.infrastructures == nil {
		return nil, infra.NewConfigurationError(task.InfrastructureID, "infrastructure store was not configured", nil)
	}
	ret, err := f.infrastructures.Load(ctx, task.InfrastructureID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return nil, infra.NewConfigurationError(task.InfrastructureID, "infrastructure not found", err)
		}
		return nil, infra.NewContextError(task.InfrastructureID, "failed to load infrastructure", err)
	}
	return ret, nil
}

// NewFactory creates a factory
func NewFactory(opts ...Option) *Factory {
	ret := &Factory{
		registry: NewRegistry(),
		config:   DefaultConfig(),
		logger:   logr.Discard(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.jobs == nil {
		ret.jobs = jobmemory.New()
	}
	return ret
}
