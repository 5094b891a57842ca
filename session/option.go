package session

import "github.com/go-logr/logr"

// Option represents builder option
type Option func(b *Builder)

// WithUser sets user requesting the session
func WithUser(user string) Option {
	return func(b *Builder) {
		b.user = user
	}
}

// WithProxyFetcher sets remote proxy fetcher
func WithProxyFetcher(fetcher ProxyFetcher) Option {
	return func(b *Builder) {
		b.proxies = fetcher
	}
}

// WithSecretRevealer sets secret revealer used for encrypted passwords
func WithSecretRevealer(revealer SecretRevealer) Option {
	return func(b *Builder) {
		b.secrets = revealer
	}
}

// WithLogger sets logger
func WithLogger(logger logr.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}
