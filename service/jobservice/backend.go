package jobservice

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/model/job"
)

// Result represents command execution outcome
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes job descriptions over an opened transport
type Runner interface {
	Run(ctx context.Context, description *job.Description) (*Result, error)
	Close() error
}

// Backend opens a runner for a bound infrastructure
type Backend interface {
	Open(ctx context.Context, binding *Binding) (Runner, error)
}

// BackendFunc adapts function to Backend
type BackendFunc func(ctx context.Context, binding *Binding) (Runner, error)

// Open calls fn
func (fn BackendFunc) Open(ctx context.Context, binding *Binding) (Runner, error) {
	return fn(ctx, binding)
}

// Registry maps infrastructure kind to backend
type Registry struct {
	backends map[infra.Kind]Backend
	mux      sync.RWMutex
}

// Register registers or replaces backend for kind
func (r *Registry) Register(kind infra.Kind, backend Backend) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.backends[kind] = backend
}

// Lookup returns backend for kind
func (r *Registry) Lookup(kind infra.Kind) (Backend, bool) {
	r.mux.RLock()
	defer r.mux.RUnlock()
	ret, ok := r.backends[kind]
	return ret, ok
}

// Kinds returns registered kinds
func (r *Registry) Kinds() []infra.Kind {
	r.mux.RLock()
	defer r.mux.RUnlock()
	var ret = make([]infra.Kind, 0, len(r.backends))
	for kind := range r.backends {
		ret = append(ret, kind)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{backends: make(map[infra.Kind]Backend)}
}
