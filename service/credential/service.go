package credential

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/viant/gridgate/model/infra"
	"github.com/viant/scy"
	"github.com/viant/scy/cred"
	"github.com/viant/scy/cred/secret"
	_ "github.com/viant/scy/kms/blowfish"
	"github.com/viant/toolbox"
	"golang.org/x/crypto/ssh"
)

// KindRaw identifies a plain text secret
const KindRaw = "raw"

// Service resolves secrets and ssh credentials with viant/scy
type Service struct {
	scyService *scy.Service
}

// Reveal decrypts raw secret stored at URL with the supplied key (i.e. blowfish://default)
func (s *Service) Reveal(ctx context.Context, URL, key string) (string, error) {
	aSecret, err := s.scyService.Load(ctx, scy.NewResource(nil, URL, keyOrDefault(key)))
	if err != nil {
		return "", infra.NewAuthenticationError("", fmt.Sprintf("failed to load secret from %s", URL), err)
	}
	return aSecret.String(), nil
}

// Store encrypts and stores raw secret at URL
func (s *Service) Store(ctx context.Context, URL, key, plainText string) error {
	resource := scy.NewResource(nil, URL, keyOrDefault(key))
	if err := s.scyService.Store(ctx, scy.NewSecret(plainText, resource)); err != nil {
		return fmt.Errorf("failed to store secret at %s: %w", URL, err)
	}
	return nil
}

// StoreCredentials encrypts JSON encoded credentials of kind (basic, ssh, generic, ...) at URL
func (s *Service) StoreCredentials(ctx context.Context, URL, key, kind string, data []byte) error {
	targetType, err := credentialsType(kind)
	if err != nil {
		return err
	}
	if targetType == nil {
		return s.Store(ctx, URL, key, string(data))
	}
	instance := reflect.New(targetType).Interface()
	if err = json.Unmarshal(data, instance); err != nil {
		return infra.NewConfigurationError("", fmt.Sprintf("invalid %v credentials", kind), err)
	}
	aSecret := scy.NewSecret(instance, scy.NewResource(targetType, URL, keyOrDefault(key)))
	if err = s.scyService.Store(ctx, aSecret); err != nil {
		return fmt.Errorf("failed to store %v credentials at %s: %w", kind, URL, err)
	}
	return nil
}

// Credentials decrypts credentials of kind stored at URL into a map with empty fields removed
func (s *Service) Credentials(ctx context.Context, URL, key, kind string) (map[string]interface{}, error) {
	targetType, err := credentialsType(kind)
	if err != nil {
		return nil, err
	}
	var target interface{}
	if targetType != nil {
		target = targetType
	}
	aSecret, err := s.scyService.Load(ctx, scy.NewResource(target, URL, keyOrDefault(key)))
	if err != nil {
		return nil, infra.NewAuthenticationError("", fmt.Sprintf("failed to load %v credentials from %s", kind, URL), err)
	}
	if aSecret.IsPlain || aSecret.Target == nil {
		return map[string]interface{}{"plainText": aSecret.String()}, nil
	}
	ret := map[string]interface{}{}
	if err = toolbox.DefaultConverter.AssignConverted(&ret, aSecret.Target); err != nil {
		return nil, fmt.Errorf("failed to convert %v credentials: %w", kind, err)
	}
	return toolbox.DeleteEmptyKeys(ret), nil
}

// SSHConfig resolves ssh client config from scy credentials reference
func (s *Service) SSHConfig(ctx context.Context, ref string) (*ssh.ClientConfig, error) {
	secrets := secret.New()
	generic, err := secrets.GetCredentials(ctx, ref)
	if err != nil {
		return nil, infra.NewAuthenticationError("", fmt.Sprintf("failed to load credentials %v", ref), err)
	}
	config, err := generic.SSH.Config(ctx)
	if err != nil {
		return nil, infra.NewAuthenticationError("", fmt.Sprintf("invalid ssh credentials %v", ref), err)
	}
	return config, nil
}

// PasswordConfig returns ssh client config for username/password authentication
func PasswordConfig(username, password string, hostKeyCallback ssh.HostKeyCallback) *ssh.ClientConfig {
	if hostKeyCallback == nil {
		hostKeyCallback = ssh.InsecureIgnoreHostKey()
	}
	return &ssh.ClientConfig{
		User:            username,
		Auth:            []ssh.AuthMethod{ssh.Password(password)},
		HostKeyCallback: hostKeyCallback,
	}
}

func credentialsType(kind string) (reflect.Type, error) {
	if kind == KindRaw {
		return nil, nil
	}
	ret, err := cred.TargetType(kind)
	if err != nil {
		return nil, infra.NewConfigurationError("", fmt.Sprintf("unsupported credentials kind %v", kind), err)
	}
	return ret, nil
}

func keyOrDefault(key string) string {
	if key == "" {
		return infra.DefaultSecretKey
	}
	return key
}

// New creates a credential service
func New() *Service {
	return &Service{
		scyService: scy.New(),
	}
}
