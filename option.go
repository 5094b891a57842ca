package gridgate

import (
	"github.com/go-logr/logr"
	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/model/job"
	"github.com/viant/gridgate/model/types"
	"github.com/viant/gridgate/service/dao"
	"github.com/viant/gridgate/service/jobservice"
	"github.com/viant/gridgate/session"
	"github.com/viant/gridgate/tracing"
	"github.com/viant/x"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option represents gridgate service option
type Option func(s *Service)

// WithConfig sets the config
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithLogger sets the logger
func WithLogger(logger logr.Logger) Option {
	return func(s *Service) {
		s.logger = logger
		s.hasLogger = true
	}
}

// WithInfrastructureDAO sets infrastructure store
func WithInfrastructureDAO(dao dao.Service[string, infra.Infrastructure]) Option {
	return func(s *Service) {
		s.infrastructures = dao
	}
}

// WithJobDAO sets job store
func WithJobDAO(dao dao.Service[string, job.Job]) Option {
	return func(s *Service) {
		s.jobs = dao
	}
}

// WithBackend registers job service backend for a kind, replacing the built-in one
func WithBackend(kind infra.Kind, backend jobservice.Backend) Option {
	return func(s *Service) {
		s.backends[kind] = backend
	}
}

// WithProxyFetcher sets remote proxy fetcher used by session builders
func WithProxyFetcher(fetcher session.ProxyFetcher) Option {
	return func(s *Service) {
		s.proxies = fetcher
	}
}

// WithSecretRevealer sets secret revealer used by session builders
func WithSecretRevealer(revealer session.SecretRevealer) Option {
	return func(s *Service) {
		s.secrets = revealer
	}
}

// WithExtensionServices sets additional action services
func WithExtensionServices(services ...types.Service) Option {
	return func(s *Service) {
		s.extensionServices = append(s.extensionServices, services...)
	}
}

// WithExtensionTypes registers additional data types decodable through Actions().Decode
func WithExtensionTypes(types ...*x.Type) Option {
	return func(s *Service) {
		s.extensionTypes = append(s.extensionTypes, types...)
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file path. The first
// successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
