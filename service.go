package gridgate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/viant/gridgate/extension"
	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/model/job"
	"github.com/viant/gridgate/model/types"
	"github.com/viant/gridgate/progress"
	"github.com/viant/gridgate/service/action/infrajob"
	"github.com/viant/gridgate/service/action/secret"
	"github.com/viant/gridgate/service/credential"
	"github.com/viant/gridgate/service/dao"
	ifs "github.com/viant/gridgate/service/dao/infrastructure/fs"
	imemory "github.com/viant/gridgate/service/dao/infrastructure/memory"
	jmemory "github.com/viant/gridgate/service/dao/job/memory"
	"github.com/viant/gridgate/service/event"
	"github.com/viant/gridgate/service/jobservice"
	"github.com/viant/gridgate/service/jobservice/ssh"
	"github.com/viant/gridgate/service/messaging"
	mmemory "github.com/viant/gridgate/service/messaging/memory"
	"github.com/viant/gridgate/service/proxy"
	"github.com/viant/gridgate/session"
	"github.com/viant/x"
)

// Service represents gridgate service
type Service struct {
	config            *Config
	logger            logr.Logger
	hasLogger         bool
	infrastructures   dao.Service[string, infra.Infrastructure]
	jobs              dao.Service[string, job.Job]
	backends          map[infra.Kind]jobservice.Backend
	proxies           session.ProxyFetcher
	secrets           session.SecretRevealer
	credentials       *credential.Service
	events            *event.Service
	progress          *progress.Tracker
	factory           *jobservice.Factory
	jobActions        *infrajob.Service
	actions           *extension.Actions
	extensionServices []types.Service
	extensionTypes    []*x.Type
}

// Config returns effective config
func (s *Service) Config() *Config {
	return s.config
}

// Infrastructures returns infrastructure store
func (s *Service) Infrastructures() dao.Service[string, infra.Infrastructure] {
	return s.infrastructures
}

// Jobs returns job store
func (s *Service) Jobs() dao.Service[string, job.Job] {
	return s.jobs
}

// JobServices returns job service factory
func (s *Service) JobServices() *jobservice.Factory {
	return s.factory
}

// Actions returns action registry
func (s *Service) Actions() *extension.Actions {
	return s.actions
}

// Events returns event service
func (s *Service) Events() *event.Service {
	return s.events
}

// Progress returns job counters tracker
func (s *Service) Progress() *progress.Tracker {
	return s.progress
}

// Builder returns a session builder for infrastructure using service proxy fetcher and secret revealer
func (s *Service) Builder(infrastructure *infra.Infrastructure, opts ...session.Option) *session.Builder {
	return session.NewBuilder(infrastructure, append(s.sessionOptions(), opts...)...)
}

// BuildSession builds a session for a stored infrastructure
func (s *Service) BuildSession(ctx context.Context, infrastructureID, user string) (*session.Session, error) {
	infrastructure, err := s.infrastructures.Load(ctx, infrastructureID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return nil, infra.NewConfigurationError(infrastructureID, "infrastructure not found", err)
		}
		return nil, infra.NewContextError(infrastructureID, "failed to load infrastructure", err)
	}
	return s.Builder(infrastructure, session.WithUser(user)).Build(ctx)
}

// OnJobState registers handler receiving every job state change
func (s *Service) OnJobState(handler func(aJob *job.Job)) error {
	return event.SetListenerOf[job.Job](s.events, func(e *event.Event[job.Job]) {
		handler(&e.Data)
	})
}

// Close cancels jobs started through actions and stops event listeners
func (s *Service) Close(ctx context.Context) error {
	err := s.jobActions.Close(ctx)
	s.events.Close()
	return err
}

func (s *Service) sessionOptions() []session.Option {
	return []session.Option{
		session.WithProxyFetcher(s.proxies),
		session.WithSecretRevealer(s.secrets),
		session.WithLogger(s.logger),
	}
}

func (s *Service) init(ctx context.Context, options []Option) error {
	for _, option := range options {
		option(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := s.ensureBaseSetup(ctx); err != nil {
		return err
	}
	s.progress = progress.NewTracker()
	s.events.SetListener(func(e *event.Event[any]) {
		if aJob, ok := e.Data.(job.Job); ok {
			s.progress.Track(&aJob)
		}
	})
	publisher, err := event.PublisherOf[job.Job](s.events)
	if err != nil {
		return err
	}
	factoryOptions := []jobservice.Option{
		jobservice.WithInfrastructures(s.infrastructures),
		jobservice.WithJobs(s.jobs),
		jobservice.WithPublisher(publisher),
		jobservice.WithSessionOptions(session.WithProxyFetcher(s.proxies), session.WithSecretRevealer(s.secrets)),
		jobservice.WithConfig(s.config.JobService),
		jobservice.WithLogger(s.logger),
	}
	for kind, backend := range s.backends {
		factoryOptions = append(factoryOptions, jobservice.WithBackend(kind, backend))
	}
	s.factory = jobservice.NewFactory(factoryOptions...)
	s.jobActions = infrajob.New(s.factory, s.infrastructures, s.sessionOptions()...)
	s.actions = extension.NewActions(s.jobActions, secret.New(s.credentials, s.infrastructures))
	for _, service := range s.extensionServices {
		s.actions.Register(service)
	}
	s.actions.RegisterTypes(s.extensionTypes...)
	return nil
}

func (s *Service) ensureBaseSetup(ctx context.Context) (err error) {
	if !s.hasLogger {
		s.logger = stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("gridgate")
	}
	if s.infrastructures == nil {
		if URL := s.config.Store.URL; URL != "" {
			if s.infrastructures, err = ifs.New(ctx, URL); err != nil {
				return err
			}
		} else {
			s.infrastructures = imemory.New()
		}
	}
	if s.jobs == nil {
		s.jobs = jmemory.New()
	}
	if s.proxies == nil {
		s.proxies = proxy.New(proxy.WithConfig(s.config.Proxy), proxy.WithLogger(s.logger))
	}
	s.credentials = credential.New()
	if s.secrets == nil {
		s.secrets = s.credentials
	}
	if _, ok := s.backends[infra.KindSSH]; !ok {
		s.backends[infra.KindSSH] = ssh.New(ssh.WithCredentials(s.credentials), ssh.WithLogger(s.logger))
	}
	buffer := s.config.Events.Buffer
	s.events, err = event.New(messaging.VendorMemory,
		event.WithLogger(s.logger),
		event.WithNewMemoryQueueConfig(func(name string) mmemory.Config {
			config := mmemory.DefaultConfig()
			config.QueueBuffer = buffer
			return config
		}))
	return err
}

// New creates gridgate service
func New(ctx context.Context, options ...Option) (*Service, error) {
	ret := &Service{backends: map[infra.Kind]jobservice.Backend{}}
	if err := ret.init(ctx, options); err != nil {
		return nil, err
	}
	return ret, nil
}
