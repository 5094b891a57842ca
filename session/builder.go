package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/service/credential"
	"github.com/viant/gridgate/service/proxy"
	"github.com/viant/gridgate/tracing"
)

// ProxyFetcher reads remote proxy credential
type ProxyFetcher interface {
	Fetch(ctx context.Context, source *infra.ProxySource) (string, error)
}

// SecretRevealer decrypts a secret stored at URL
type SecretRevealer interface {
	Reveal(ctx context.Context, URL, key string) (string, error)
}

// Builder builds sessions for an infrastructure; it is meant for a single caller
type Builder struct {
	infrastructureID string
	missing          bool
	params           infra.ParameterMap
	user             string
	proxies          ProxyFetcher
	secrets          SecretRevealer
	logger           logr.Logger
}

// AddParameter adds or replaces a parameter
func (b *Builder) AddParameter(param *infra.Parameter) {
	b.params.Set(param)
}

// Build creates a new session with a context derived from parameters
func (b *Builder) Build(ctx context.Context) (ret *Session, err error) {
	ctx, span := tracing.StartSpan(ctx, "session.build", "INTERNAL")
	defer func() { tracing.EndSpan(span, err) }()
	if b.missing {
		return nil, infra.NewConfigurationError("", "infrastructure was nil", nil)
	}

	config, err := infra.Parse(b.params, b.user)
	if err != nil {
		err = infra.WithInfrastructure(err, b.infrastructureID)
		b.logger.Error(err, "invalid infrastructure configuration", "infrastructure", b.infrastructureID)
		return nil, err
	}
	span.WithAttributes(map[string]string{"infrastructure": b.infrastructureID, "kind": config.Kind().String()})
	b.logger.V(1).Info("creating session", "infrastructure", b.infrastructureID, "kind", config.Kind())

	sessionContext, err := b.newContext(ctx, config)
	if err != nil {
		err = infra.WithInfrastructure(err, b.infrastructureID)
		b.logger.Error(err, "failed to create context", "infrastructure", b.infrastructureID, "kind", config.Kind())
		return nil, err
	}
	ret = New(b.infrastructureID, config.Kind(), b.user)
	if err = ret.AddContext(sessionContext); err != nil {
		return nil, infra.NewContextError(b.infrastructureID, "impossible to open a session in the infrastructure", err)
	}
	return ret, nil
}

func (b *Builder) newContext(ctx context.Context, config infra.Config) (*Context, error) {
	switch actual := config.(type) {
	case *infra.VOMSConfig:
		return b.vomsContext(ctx, &actual.Proxy)
	case *infra.WMSConfig:
		ret, err := b.vomsContext(ctx, &actual.Proxy)
		if err != nil {
			return nil, err
		}
		ret.SetVectorAttribute(AttrJobServiceAttributes, actual.JobServiceAttributes())
		return ret, nil
	case *infra.OCCIConfig:
		userProxy, err := b.fetchProxy(ctx, &actual.Proxy)
		if err != nil {
			return nil, err
		}
		ret := NewContext(ContextROCCI)
		ret.SetAttribute(AttrUserProxy, userProxy)
		ret.SetAttribute(AttrUserID, infra.DefaultSSHUserID)
		ret.SetAttribute(AttrUserCert, actual.PublicKey)
		ret.SetAttribute(AttrUserKey, actual.PrivateKey)
		return ret, nil
	case *infra.SSHConfig:
		return b.userPassContext(ctx, actual)
	}
	return nil, infra.NewUnsupportedError("", fmt.Sprintf("infrastructure type %v is not supported yet", config.Kind()))
}

func (b *Builder) vomsContext(ctx context.Context, source *infra.ProxySource) (*Context, error) {
	userProxy, err := b.fetchProxy(ctx, source)
	if err != nil {
		return nil, err
	}
	ret := NewContext(ContextVOMS)
	ret.SetAttribute(AttrUserProxy, userProxy)
	return ret, nil
}

func (b *Builder) fetchProxy(ctx context.Context, source *infra.ProxySource) (string, error) {
	if b.proxies == nil {
		b.proxies = proxy.New(proxy.WithLogger(b.logger))
	}
	return b.proxies.Fetch(ctx, source)
}

func (b *Builder) userPassContext(ctx context.Context, config *infra.SSHConfig) (*Context, error) {
	ret := NewContext(ContextUserPass)
	if config.Username != "" {
		ret.SetAttribute(AttrUserID, config.Username)
	}
	password := config.Password
	if config.PasswordSecret != "" {
		if b.secrets == nil {
			b.secrets = credential.New()
		}
		revealed, err := b.secrets.Reveal(ctx, config.PasswordSecret, config.SecretKey)
		if err != nil {
			if errors.Is(err, infra.ErrAuthentication) {
				return nil, err
			}
			return nil, infra.NewAuthenticationError("", "failed to reveal ssh password", err)
		}
		password = revealed
	}
	if password != "" {
		ret.SetAttribute(AttrUserPass, password)
	}
	if config.Credentials != "" {
		ret.SetAttribute(AttrCredentials, config.Credentials)
	}
	ret.SetVectorAttribute(AttrDataServiceAttributes, config.DataServiceAttributes())
	return ret, nil
}

func newBuilder(infrastructureID string, params infra.ParameterMap, opts []Option) *Builder {
	ret := &Builder{
		infrastructureID: infrastructureID,
		params:           params,
		logger:           logr.Discard(),
	}
	if ret.params == nil {
		ret.params = infra.ParameterMap{}
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// NewBuilder creates a session builder for the supplied infrastructure
func NewBuilder(infrastructure *infra.Infrastructure, opts ...Option) *Builder {
	if infrastructure == nil {
		ret := newBuilder("", nil, opts)
		ret.missing = true
		return ret
	}
	return newBuilder(infrastructure.ID, infrastructure.Parameters.Map(), opts)
}

// NewBuilderWithParameters creates a session builder for a raw parameter map
func NewBuilderWithParameters(params infra.ParameterMap, opts ...Option) *Builder {
	return newBuilder("", params, opts)
}
