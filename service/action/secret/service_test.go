package secret

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/service/credential"
	"github.com/viant/gridgate/service/dao/infrastructure/memory"
	"github.com/viant/gridgate/session"
)

func TestService_SecureReveal(t *testing.T) {
	ctx := context.Background()
	srv := New(nil, nil)
	secure, _ := srv.Method("secure")
	reveal, _ := srv.Method("reveal")

	testCases := []struct {
		description string
		input       *SecureInput
		reveal      *RevealInput
		expectPlain string
		expectData  map[string]interface{}
	}{
		{
			description: "raw content with explicit key",
			input:       &SecureInput{Content: "s3cret", DestURL: "mem://localhost/gridgate/secret/raw.json", Key: "blowfish://default"},
			reveal:      &RevealInput{SourceURL: "mem://localhost/gridgate/secret/raw.json", Key: "blowfish://default"},
			expectPlain: "s3cret",
		},
		{
			description: "raw content with default key",
			input:       &SecureInput{Content: "other", DestURL: "mem://localhost/gridgate/secret/default.json"},
			reveal:      &RevealInput{SourceURL: "mem://localhost/gridgate/secret/default.json"},
			expectPlain: "other",
		},
		{
			description: "basic credentials",
			input: &SecureInput{Kind: "basic", DestURL: "mem://localhost/gridgate/secret/basic.json",
				Data: map[string]interface{}{"Username": "futuregateway", "Password": "s3cret"}},
			reveal:     &RevealInput{Kind: "basic", SourceURL: "mem://localhost/gridgate/secret/basic.json"},
			expectData: map[string]interface{}{"Username": "futuregateway"},
		},
	}

	for _, testCase := range testCases {
		output := &SecureOutput{}
		if !assert.NoError(t, secure(ctx, testCase.input, output), testCase.description) {
			continue
		}
		assert.True(t, output.Success, testCase.description)
		revealed := &RevealOutput{}
		if !assert.NoError(t, reveal(ctx, testCase.reveal, revealed), testCase.description) {
			continue
		}
		assert.True(t, revealed.Success, testCase.description)
		assert.Equal(t, testCase.expectPlain, revealed.PlainText, testCase.description)
		for name, expected := range testCase.expectData {
			assert.Equal(t, expected, revealed.Data[name], testCase.description+" "+name)
		}
	}
}

func TestService_SecureErrors(t *testing.T) {
	ctx := context.Background()
	srv := New(nil, nil)
	secure, _ := srv.Method("secure")
	reveal, _ := srv.Method("reveal")

	err := secure(ctx, &SecureInput{DestURL: "mem://localhost/gridgate/secret/empty.json"}, &SecureOutput{})
	assert.True(t, errors.Is(err, infra.ErrConfiguration))
	err = secure(ctx, &SecureInput{Content: "x"}, &SecureOutput{})
	assert.True(t, errors.Is(err, infra.ErrConfiguration))
	err = secure(ctx, &SecureInput{Content: "x", Kind: "kerberos", DestURL: "mem://localhost/gridgate/secret/k.json"}, &SecureOutput{})
	assert.True(t, errors.Is(err, infra.ErrConfiguration))
	assert.Error(t, secure(ctx, &RevealInput{}, &SecureOutput{}))

	err = reveal(ctx, &RevealInput{SourceURL: "mem://localhost/gridgate/secret/none.json"}, &RevealOutput{})
	assert.True(t, errors.Is(err, infra.ErrAuthentication))
	err = reveal(ctx, &RevealInput{InfrastructureID: "ssh-1"}, &RevealOutput{})
	assert.True(t, errors.Is(err, infra.ErrConfiguration))

	_, err = srv.Method("signJWT")
	assert.Error(t, err)
}

func TestService_SecurePassword(t *testing.T) {
	ctx := context.Background()
	store := memory.New(infra.NewInfrastructure("ssh-1",
		infra.NewParameter("jobservice", "ssh://gridui"),
		infra.NewParameter("username", "bob"),
		infra.NewParameter("password", "s3cret")),
		infra.NewInfrastructure("ssh-2", infra.NewParameter("jobservice", "ssh://gridui")))
	credentials := credential.New()
	srv := New(credentials, store)
	securePassword, err := srv.Method("securePassword")
	if !assert.NoError(t, err) {
		return
	}
	URL := "mem://localhost/gridgate/secret/ssh-1.json"
	output := &SecureOutput{}
	assert.NoError(t, securePassword(ctx, &SecurePasswordInput{InfrastructureID: "ssh-1", DestURL: URL}, output))
	assert.True(t, output.Success)

	stored, err := store.Load(ctx, "ssh-1")
	if !assert.NoError(t, err) {
		return
	}
	_, hasPassword := stored.Parameters.Lookup("password")
	assert.False(t, hasPassword)
	assert.Equal(t, URL, stored.Parameters.Value("passwordsecret", ""))
	assert.Equal(t, "blowfish://default", stored.Parameters.Value("secretkey", ""))

	revealed := &RevealOutput{}
	assert.NoError(t, srv.Reveal(ctx, &RevealInput{InfrastructureID: "ssh-1"}, revealed))
	assert.Equal(t, "s3cret", revealed.PlainText)

	aSession, err := session.NewBuilder(stored, session.WithSecretRevealer(credentials)).Build(ctx)
	if assert.NoError(t, err) {
		userPass, _ := aSession.Context(session.ContextUserPass)
		password, _ := userPass.Attribute(session.AttrUserPass)
		assert.Equal(t, "s3cret", password)
	}

	err = securePassword(ctx, &SecurePasswordInput{InfrastructureID: "ssh-2", DestURL: URL}, &SecureOutput{})
	assert.True(t, errors.Is(err, infra.ErrConfiguration))
	err = securePassword(ctx, &SecurePasswordInput{InfrastructureID: "missing", DestURL: URL}, &SecureOutput{})
	assert.True(t, errors.Is(err, infra.ErrConfiguration))
}
