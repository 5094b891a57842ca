package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/viant/gridgate/internal/clock"
	"github.com/viant/gridgate/internal/idgen"
	"github.com/viant/gridgate/model/infra"
)

// Session holds authentication contexts for an infrastructure
type Session struct {
	ID               string
	InfrastructureID string
	Kind             infra.Kind
	User             string
	CreatedAt        time.Time
	contexts         []*Context
	closed           bool
	mux              sync.RWMutex
}

// AddContext attaches a context to the session
func (s *Session) AddContext(context *Context) error {
	if context == nil {
		return fmt.Errorf("context was nil")
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.closed {
		return fmt.Errorf("session %v is closed", s.ID)
	}
	s.contexts = append(s.contexts, context)
	return nil
}

// Contexts returns session contexts
func (s *Session) Contexts() []*Context {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return append([]*Context{}, s.contexts...)
}

// Context returns the first context of the supplied type
func (s *Session) Context(contextType ContextType) (*Context, bool) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	for _, candidate := range s.contexts {
		if candidate.Type == contextType {
			return candidate, true
		}
	}
	return nil, false
}

// Closed returns true if session was closed
func (s *Session) Closed() bool {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.closed
}

// Close releases session contexts
func (s *Session) Close() error {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.closed = true
	s.contexts = nil
	return nil
}

// New creates an empty session
func New(infrastructureID string, kind infra.Kind, user string) *Session {
	return &Session{
		ID:               idgen.New(),
		InfrastructureID: infrastructureID,
		Kind:             kind,
		User:             user,
		CreatedAt:        clock.Now(),
	}
}
