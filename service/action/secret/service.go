package secret

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/model/types"
	"github.com/viant/gridgate/service/credential"
	"github.com/viant/gridgate/service/dao"
)

const Name = "infra/secret"

// Service secures infrastructure credentials
type Service struct {
	credentials     *credential.Service
	infrastructures dao.Service[string, infra.Infrastructure]
	fs              afs.Service
}

func (s *Service) infrastructure(ctx context.Context, id string) (*infra.Infrastructure, error) {
	if s.infrastructures == nil {
		return nil, infra.NewConfigurationError(id, "infrastructure store was not configured", nil)
	}
	ret, err := s.infrastructures.Load(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return nil, infra.NewConfigurationError(id, "infrastructure not found", err)
		}
		return nil, infra.NewContextError(id, "failed to load infrastructure", err)
	}
	return ret, nil
}

// New creates a secret service; infrastructures may be nil when only URL based methods are used
func New(credentials *credential.Service, infrastructures dao.Service[string, infra.Infrastructure]) *Service {
	if credentials == nil {
		credentials = credential.New()
	}
	return &Service{
		credentials:     credentials,
		infrastructures: infrastructures,
		fs:              afs.New(),
	}
}

// Name returns the service Name
func (s *Service) Name() string {
	return Name
}

// Methods returns the service methods
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "secure",
			Description: "Encrypts raw or typed credentials and stores them at destURL.",
			Input:       reflect.TypeOf(&SecureInput{}),
			Output:      reflect.TypeOf(&SecureOutput{}),
		},
		{
			Name:        "reveal",
			Description: "Decrypts secret stored at sourceURL or referenced by an infrastructure passwordsecret.",
			Input:       reflect.TypeOf(&RevealInput{}),
			Output:      reflect.TypeOf(&RevealOutput{}),
		},
		{
			Name:        "securePassword",
			Description: "Moves plain ssh password of an infrastructure into an encrypted secret.",
			Input:       reflect.TypeOf(&SecurePasswordInput{}),
			Output:      reflect.TypeOf(&SecureOutput{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "secure":
		return s.secure, nil
	case "reveal":
		return s.reveal, nil
	case "securepassword":
		return s.securePassword, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}

func (s *Service) secure(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*SecureInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*SecureOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Secure(ctx, input, output)
}

func (s *Service) reveal(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*RevealInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*RevealOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Reveal(ctx, input, output)
}

func (s *Service) securePassword(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*SecurePasswordInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*SecureOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.SecurePassword(ctx, input, output)
}
