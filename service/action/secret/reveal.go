package secret

import (
	"context"
	"fmt"

	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/service/credential"
)

// RevealInput locates a secret either by URL or through an infrastructure passwordsecret parameter
type RevealInput struct {
	SourceURL        string `json:"sourceURL,omitempty" description:"URL of the encrypted secret"`
	InfrastructureID string `json:"infrastructureId,omitempty" description:"infrastructure whose passwordsecret gets revealed"`
	Kind             string `json:"kind,omitempty" description:"credentials kind: raw (default), basic, ssh, generic"`
	Key              string `json:"key,omitempty" description:"encryption key, defaults to blowfish://default"`
}

// RevealOutput contains the revealed secret
type RevealOutput struct {
	PlainText string                 `json:"plainText,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Success   bool                   `json:"success"`
}

// Reveal decrypts a secret
func (s *Service) Reveal(ctx context.Context, input *RevealInput, output *RevealOutput) error {
	URL, key := input.SourceURL, input.Key
	if input.InfrastructureID != "" {
		infrastructure, err := s.infrastructure(ctx, input.InfrastructureID)
		if err != nil {
			return err
		}
		params := infrastructure.Parameters.Map()
		var ok bool
		if URL, ok = params.Lookup(infra.ParamPasswordSecret); !ok || URL == "" {
			return infra.NewConfigurationError(infrastructure.ID, fmt.Sprintf("infrastructure has no %v parameter", infra.ParamPasswordSecret), nil)
		}
		if key == "" {
			key = params.Value(infra.ParamSecretKey, "")
		}
	}
	if URL == "" {
		return infra.NewConfigurationError(input.InfrastructureID, "sourceURL was empty", nil)
	}
	if input.Kind == "" || input.Kind == credential.KindRaw {
		plainText, err := s.credentials.Reveal(ctx, URL, key)
		if err != nil {
			return infra.WithInfrastructure(err, input.InfrastructureID)
		}
		output.PlainText = plainText
		output.Success = true
		return nil
	}
	data, err := s.credentials.Credentials(ctx, URL, key, input.Kind)
	if err != nil {
		return infra.WithInfrastructure(err, input.InfrastructureID)
	}
	output.Data = data
	output.Success = true
	return nil
}
