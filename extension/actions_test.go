package extension

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/gridgate/model/types"
)

type echoInput struct {
	Message string `json:"message"`
}

type echoOutput struct {
	Message string `json:"message"`
}

type echo struct{}

func (echo) Name() string { return "echo" }

func (echo) Methods() types.Signatures {
	return types.Signatures{
		{Name: "echo", Input: reflect.TypeOf(&echoInput{}), Output: reflect.TypeOf(&echoOutput{})},
		{Name: "shout", Input: reflect.TypeOf(&echoInput{}), Output: reflect.TypeOf(&echoOutput{})},
	}
}

func (e echo) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "echo":
		return func(ctx context.Context, in, out interface{}) error {
			out.(*echoOutput).Message = in.(*echoInput).Message
			return nil
		}, nil
	case "shout":
		return func(ctx context.Context, in, out interface{}) error {
			input, ok := in.(*echoInput)
			if !ok {
				return types.NewInvalidInputError(in)
			}
			out.(*echoOutput).Message = strings.ToUpper(input.Message)
			return nil
		}, nil
	}
	return nil, types.NewMethodNotFoundError(name)
}

func TestActions(t *testing.T) {
	actions := NewActions(echo{})
	assert.Equal(t, []string{"echo"}, actions.Names())
	assert.NotNil(t, actions.Lookup("echo"))
	assert.Nil(t, actions.Lookup("missing"))

	exec, err := actions.Method("echo", "echo")
	if assert.NoError(t, err) {
		out := &echoOutput{}
		assert.NoError(t, exec(context.Background(), &echoInput{Message: "hi"}, out))
		assert.Equal(t, "hi", out.Message)
	}
	_, err = actions.Method("echo", "whisper")
	assert.EqualError(t, err, "method whisper not found")
	_, err = actions.Method("missing", "echo")
	assert.EqualError(t, err, "service missing not found")
	assert.NotNil(t, echo{}.Methods().Lookup("echo"))
}

func TestActions_Call(t *testing.T) {
	actions := NewActions(echo{})
	testCases := []struct {
		description string
		service     string
		method      string
		input       string
		expect      string
		expectErr   bool
	}{
		{description: "echo", service: "echo", method: "echo", input: `{"message":"grid"}`, expect: "grid"},
		{description: "case insensitive method", service: "echo", method: "SHOUT", input: `{"message":"grid"}`, expect: "GRID"},
		{description: "empty input", service: "echo", method: "echo", expect: ""},
		{description: "malformed input", service: "echo", method: "echo", input: `{`, expectErr: true},
		{description: "unknown method", service: "echo", method: "whisper", expectErr: true},
		{description: "unknown service", service: "missing", method: "echo", expectErr: true},
	}
	for _, testCase := range testCases {
		actual, err := actions.Call(context.Background(), testCase.service, testCase.method, []byte(testCase.input))
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		output, ok := actual.(*echoOutput)
		if assert.True(t, ok, testCase.description) {
			assert.Equal(t, testCase.expect, output.Message, testCase.description)
		}
	}
}

func TestActions_Decode(t *testing.T) {
	actions := NewActions(echo{})
	testCases := []struct {
		description string
		dataType    string
		data        string
		expect      interface{}
		expectErr   bool
	}{
		{description: "registered input", dataType: "extension.echoInput", data: `{"message":"hi"}`, expect: &echoInput{Message: "hi"}},
		{description: "slice modifier", dataType: "[]extension.echoOutput", data: `[{"message":"a"}]`, expect: &[]echoOutput{{Message: "a"}}},
		{description: "not registered", dataType: "extension.other", expectErr: true},
	}
	for _, testCase := range testCases {
		actual, err := actions.Decode(testCase.dataType, []byte(testCase.data))
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		if assert.NoError(t, err, testCase.description) {
			assert.Equal(t, testCase.expect, actual, testCase.description)
		}
	}
}
