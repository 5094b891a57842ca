package extension

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/viant/gridgate/model/types"
	"github.com/viant/x"
)

// Actions provides action services by name
type Actions struct {
	services map[string]types.Service
	types    *Types
	mux      sync.RWMutex
}

// Types returns registered action data types
func (s *Actions) Types() *Types {
	return s.types
}

// Lookup returns a service by name
func (s *Actions) Lookup(name string) types.Service {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.services[name]
}

// Register registers a service with its method input and output types
func (s *Actions) Register(service types.Service) {
	s.mux.Lock()
	s.services[service.Name()] = service
	s.mux.Unlock()
	s.types.RegisterSignatures(service.Methods())
}

// Names returns registered service names
func (s *Actions) Names() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret := make([]string, 0, len(s.services))
	for name := range s.services {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// Method returns executable for service method
func (s *Actions) Method(service, method string) (types.Executable, error) {
	aService := s.Lookup(service)
	if aService == nil {
		return nil, types.NewServiceNotFoundError(service)
	}
	return aService.Method(method)
}

// Signature returns service method signature, method names are case insensitive
func (s *Actions) Signature(service, method string) (*types.Signature, error) {
	aService := s.Lookup(service)
	if aService == nil {
		return nil, types.NewServiceNotFoundError(service)
	}
	signatures := aService.Methods()
	for i := range signatures {
		if strings.EqualFold(signatures[i].Name, method) {
			return &signatures[i], nil
		}
	}
	return nil, types.NewMethodNotFoundError(method)
}

// Call decodes JSON input into the method input type, runs the method and returns its output
func (s *Actions) Call(ctx context.Context, service, method string, input []byte) (interface{}, error) {
	signature, err := s.Signature(service, method)
	if err != nil {
		return nil, err
	}
	execute, err := s.Method(service, method)
	if err != nil {
		return nil, err
	}
	in, err := newValue(signature.Input, input)
	if err != nil {
		return nil, fmt.Errorf("invalid %v.%v input: %w", service, method, err)
	}
	out, err := newValue(signature.Output, nil)
	if err != nil {
		return nil, err
	}
	if err = execute(ctx, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Decode decodes JSON data into a new instance of a registered type (i.e. infrajob.JobInput)
func (s *Actions) Decode(dataType string, data []byte) (interface{}, error) {
	aType := s.types.Lookup(dataType)
	if aType == nil {
		return nil, fmt.Errorf("type %v not registered", dataType)
	}
	return newValue(aType.Type, data)
}

func newValue(rType reflect.Type, data []byte) (interface{}, error) {
	if rType == nil {
		return nil, fmt.Errorf("type was nil")
	}
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	ret := reflect.New(rType).Interface()
	if len(data) > 0 {
		if err := json.Unmarshal(data, ret); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// NewActions creates a new action registry
func NewActions(services ...types.Service) *Actions {
	ret := &Actions{
		services: make(map[string]types.Service),
		types:    NewTypes(),
	}
	for _, service := range services {
		ret.Register(service)
	}
	return ret
}

// RegisterTypes registers additional data types
func (s *Actions) RegisterTypes(dataTypes ...*x.Type) {
	for _, dataType := range dataTypes {
		s.types.Register(dataType)
	}
}
