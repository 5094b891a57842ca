package ssh

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"
	rssh "github.com/viant/gosh/runner/ssh"
	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/model/job"
	"github.com/viant/gridgate/service/credential"
	"github.com/viant/gridgate/service/jobservice"
	"github.com/viant/gridgate/session"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// DefaultPort is used when jobservice endpoint has no port
const DefaultPort = 22

// knownHostsAttribute prefixes the data service attribute holding known hosts file
const knownHostsAttribute = "sftp.KnownHosts="

// Shell runs commands in an open shell
type Shell interface {
	Run(ctx context.Context, command string, options ...runner.Option) (string, int, error)
	Close() error
}

// CredentialResolver resolves ssh config from a credentials reference
type CredentialResolver interface {
	SSHConfig(ctx context.Context, ref string) (*ssh.ClientConfig, error)
}

// Dialer opens a shell; a nil config means local execution
type Dialer func(ctx context.Context, address string, config *ssh.ClientConfig) (Shell, error)

// Backend runs jobs over ssh with viant/gosh
type Backend struct {
	credentials CredentialResolver
	dial        Dialer
	logger      logr.Logger
}

// Open opens a shell to binding endpoint
func (b *Backend) Open(ctx context.Context, binding *jobservice.Binding) (jobservice.Runner, error) {
	address := binding.Endpoint.Address(DefaultPort)
	var config *ssh.ClientConfig
	if !isLocal(binding.Endpoint.Host) {
		var err error
		if config, err = b.clientConfig(ctx, binding); err != nil {
			return nil, err
		}
	}
	shell, err := b.dial(ctx, address, config)
	if err != nil {
		return nil, infra.NewNetworkError(binding.Infrastructure.ID, fmt.Sprintf("failed to connect to %v", address), err)
	}
	b.logger.V(1).Info("ssh shell opened", "address", address, "infrastructure", binding.Infrastructure.ID)
	return &shellRunner{shell: shell}, nil
}

func (b *Backend) clientConfig(ctx context.Context, binding *jobservice.Binding) (*ssh.ClientConfig, error) {
	infrastructureID := binding.Infrastructure.ID
	userPass, ok := binding.Session.Context(session.ContextUserPass)
	if !ok {
		return nil, infra.NewContextError(infrastructureID, "missing UserPass context", nil)
	}
	var config *ssh.ClientConfig
	if ref, ok := userPass.Attribute(session.AttrCredentials); ok {
		var err error
		if config, err = b.credentials.SSHConfig(ctx, ref); err != nil {
			return nil, infra.WithInfrastructure(err, infrastructureID)
		}
	} else {
		username, _ := userPass.Attribute(session.AttrUserID)
		password, _ := userPass.Attribute(session.AttrUserPass)
		if username == "" || password == "" {
			return nil, infra.NewAuthenticationError(infrastructureID, "missing ssh username or password", nil)
		}
		config = credential.PasswordConfig(username, password, nil)
	}
	if knownHosts := knownHostsFile(userPass); knownHosts != "" {
		callback, err := knownhosts.New(knownHosts)
		if err != nil {
			return nil, infra.NewConfigurationError(infrastructureID, fmt.Sprintf("invalid known hosts file %v", knownHosts), err)
		}
		config.HostKeyCallback = callback
	}
	return config, nil
}

func knownHostsFile(sessionContext *session.Context) string {
	values, _ := sessionContext.VectorAttribute(session.AttrDataServiceAttributes)
	for _, value := range values {
		if strings.HasPrefix(value, knownHostsAttribute) {
			return value[len(knownHostsAttribute):]
		}
	}
	return ""
}

func isLocal(host string) bool {
	return host == "localhost" || host == "127.0.0.1"
}

type shellRunner struct {
	shell Shell
	mux   sync.Mutex
}

// Run runs description; a shell executes one command at a time
func (r *shellRunner) Run(ctx context.Context, description *job.Description) (*jobservice.Result, error) {
	r.mux.Lock()
	defer r.mux.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	command := Command(description)
	var options []runner.Option
	if deadline, ok := ctx.Deadline(); ok {
		options = append(options, runner.WithTimeout(int(time.Until(deadline).Milliseconds())))
	}
	output, status, err := r.shell.Run(ctx, command, options...)
	ret := &jobservice.Result{ExitCode: status}
	if status == 0 {
		ret.Stdout = output
	} else {
		ret.Stderr = output
	}
	if err != nil {
		return ret, fmt.Errorf("command %q interrupted: %w", description.Executable, err)
	}
	return ret, nil
}

func (r *shellRunner) Close() error {
	return r.shell.Close()
}

func dial(ctx context.Context, address string, config *ssh.ClientConfig) (Shell, error) {
	var shell *gosh.Service
	var err error
	if config == nil {
		shell, err = gosh.New(ctx, local.New())
	} else {
		shell, err = gosh.New(ctx, rssh.New(address, config))
	}
	if err != nil {
		return nil, err
	}
	return shell, nil
}

// New creates ssh backend
func New(opts ...Option) *Backend {
	ret := &Backend{dial: dial, logger: logr.Discard()}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.credentials == nil {
		ret.credentials = credential.New()
	}
	return ret
}
