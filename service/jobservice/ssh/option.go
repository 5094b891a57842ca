package ssh

import "github.com/go-logr/logr"

// Option represents backend option
type Option func(b *Backend)

// WithDialer sets shell dialer
func WithDialer(dialer Dialer) Option {
	return func(b *Backend) {
		b.dial = dialer
	}
}

// WithCredentials sets credential resolver
func WithCredentials(resolver CredentialResolver) Option {
	return func(b *Backend) {
		b.credentials = resolver
	}
}

// WithLogger sets logger
func WithLogger(logger logr.Logger) Option {
	return func(b *Backend) {
		b.logger = logger
	}
}
