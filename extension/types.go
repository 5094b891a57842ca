package extension

import (
	"path"
	"reflect"
	"strings"
	"sync"

	"github.com/viant/gridgate/model/types"
	"github.com/viant/x"
)

// Types registers action input and output types, resolvable by package qualified name (i.e. infrajob.SubmitInput)
type Types struct {
	x.Registry
	imports map[string]string
	mux     sync.RWMutex
}

// Register adds a data type to the registry
func (t *Types) Register(dataType *x.Type) {
	t.mux.Lock()
	defer t.mux.Unlock()
	if pkgPath := dataType.PkgPath; pkgPath != "" {
		t.imports[path.Base(pkgPath)] = pkgPath
	}
	t.Registry.Register(dataType)
}

// RegisterSignatures registers named input and output types of service methods
func (t *Types) RegisterSignatures(signatures types.Signatures) {
	for _, signature := range signatures {
		for _, rType := range []reflect.Type{signature.Input, signature.Output} {
			if rType == nil {
				continue
			}
			if rType.Kind() == reflect.Ptr {
				rType = rType.Elem()
			}
			if rType.Name() == "" || rType.PkgPath() == "" {
				continue
			}
			t.Register(x.NewType(rType))
		}
	}
}

// Lookup returns a data type, supporting [] and map[string] modifiers, or nil when not registered
func (t *Types) Lookup(dataType string) *x.Type {
	t.mux.RLock()
	defer t.mux.RUnlock()
	modifier := ""
	if idx := strings.LastIndex(dataType, "]"); idx != -1 {
		modifier = dataType[:idx+1]
		dataType = dataType[idx+1:]
	}
	if idx := strings.LastIndex(dataType, "."); idx != -1 {
		if pkgPath, ok := t.imports[dataType[:idx]]; ok {
			dataType = pkgPath + dataType[idx:]
		}
	}
	ret := t.Registry.Lookup(dataType)
	if ret == nil {
		return nil
	}
	rType := ret.Type
	switch strings.TrimSpace(modifier) {
	case "":
		return ret
	case "[]":
		rType = reflect.SliceOf(rType)
	case "map[string]":
		rType = reflect.MapOf(reflect.TypeOf(""), rType)
	default:
		return nil
	}
	return x.NewType(rType)
}

// NewTypes creates a type registry
func NewTypes(options ...x.RegistryOption) *Types {
	return &Types{
		Registry: *x.NewRegistry(options...),
		imports:  map[string]string{},
	}
}
