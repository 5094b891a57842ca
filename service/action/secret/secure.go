package secret

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/service/credential"
)

// SecureInput describes credentials to encrypt
type SecureInput struct {
	SourceURL string                 `json:"sourceURL,omitempty" description:"URL to read credentials from"`
	Content   string                 `json:"content,omitempty" description:"plain credentials"`
	Data      map[string]interface{} `json:"data,omitempty" description:"structured credentials, i.e. {\"Username\":\"fg\",\"Password\":\"...\"}"`
	DestURL   string                 `json:"destURL" required:"true" description:"URL of the encrypted secret"`
	Kind      string                 `json:"kind,omitempty" description:"credentials kind: raw (default), basic, ssh, generic"`
	Key       string                 `json:"key,omitempty" description:"encryption key, defaults to blowfish://default"`
}

// SecurePasswordInput identifies infrastructure whose password gets encrypted
type SecurePasswordInput struct {
	InfrastructureID string `json:"infrastructureId" required:"true"`
	DestURL          string `json:"destURL" required:"true" description:"URL of the encrypted password"`
	Key              string `json:"key,omitempty" description:"encryption key, defaults to blowfish://default"`
}

// SecureOutput reports where a secret was stored
type SecureOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (i *SecureInput) kind() string {
	if i.Kind == "" {
		return credential.KindRaw
	}
	return i.Kind
}

func (i *SecureInput) payload(ctx context.Context, fs afs.Service) ([]byte, error) {
	switch {
	case i.Content != "":
		return []byte(i.Content), nil
	case len(i.Data) > 0:
		return json.Marshal(i.Data)
	case i.SourceURL != "":
		data, err := fs.DownloadWithURL(ctx, i.SourceURL)
		if err != nil {
			return nil, fmt.Errorf("failed to download credentials from %s: %w", i.SourceURL, err)
		}
		return data, nil
	}
	return nil, infra.NewConfigurationError("", "no credentials: specify content, data or sourceURL", nil)
}

// Secure encrypts credentials and stores them at DestURL
func (s *Service) Secure(ctx context.Context, input *SecureInput, output *SecureOutput) error {
	if input.DestURL == "" {
		return infra.NewConfigurationError("", "destURL was empty", nil)
	}
	data, err := input.payload(ctx, s.fs)
	if err != nil {
		return err
	}
	if err = s.credentials.StoreCredentials(ctx, input.DestURL, input.Key, input.kind(), data); err != nil {
		return err
	}
	output.Success = true
	output.Message = fmt.Sprintf("%v credentials stored at %s", input.kind(), input.DestURL)
	return nil
}

// SecurePassword encrypts infrastructure password and replaces it with passwordsecret/secretkey parameters
func (s *Service) SecurePassword(ctx context.Context, input *SecurePasswordInput, output *SecureOutput) error {
	infrastructure, err := s.infrastructure(ctx, input.InfrastructureID)
	if err != nil {
		return err
	}
	password, ok := infrastructure.Parameters.Map().Lookup(infra.ParamPassword)
	if !ok || password == "" {
		return infra.NewConfigurationError(input.InfrastructureID, "infrastructure has no password parameter", nil)
	}
	key := input.Key
	if key == "" {
		key = infra.DefaultSecretKey
	}
	if err = s.credentials.Store(ctx, input.DestURL, key, password); err != nil {
		return fmt.Errorf("infrastructure %v: %w", infrastructure.ID, err)
	}
	var params infra.Parameters
	for _, param := range infrastructure.Parameters {
		switch param.Name {
		case infra.ParamPassword, infra.ParamPasswordSecret, infra.ParamSecretKey:
			continue
		}
		params = append(params, param)
	}
	infrastructure.Parameters = append(params,
		infra.NewParameter(infra.ParamPasswordSecret, input.DestURL),
		infra.NewParameter(infra.ParamSecretKey, key))
	if err = s.infrastructures.Save(ctx, infrastructure); err != nil {
		return fmt.Errorf("failed to save infrastructure %v: %w", infrastructure.ID, err)
	}
	output.Success = true
	output.Message = fmt.Sprintf("password of %v stored at %s", infrastructure.ID, input.DestURL)
	return nil
}
