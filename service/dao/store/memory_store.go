package store

import (
	"context"
	"sync"

	"github.com/viant/gridgate/service/dao"
)

// MemoryStore is a generic in-memory implementation of dao.Service.
// It keeps entities of type *T mapped by a comparable key K obtained
// from the supplied keySelector function.
type MemoryStore[K comparable, T any] struct {
	mu          sync.RWMutex
	records     map[K]*T
	keySelector func(*T) K
	matcher     func(*T, []*dao.Parameter) bool
	copier      func(*T) *T
}

// WithCopier makes the store keep and hand out copies produced by fn.
func (s *MemoryStore[K, T]) WithCopier(fn func(*T) *T) *MemoryStore[K, T] {
	s.copier = fn
	return s
}

func (s *MemoryStore[K, T]) copyOf(v *T) *T {
	if s.copier == nil {
		return v
	}
	return s.copier(v)
}

// Save stores or overwrites a record.
func (s *MemoryStore[K, T]) Save(_ context.Context, v *T) error {
	if v == nil {
		return dao.ErrNilEntity
	}
	key := s.keySelector(v)
	var zero K
	if key == zero {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = s.copyOf(v)
	return nil
}

// Load returns a record by key.
func (s *MemoryStore[K, T]) Load(_ context.Context, key K) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	if !ok {
		return nil, dao.ErrNotFound
	}
	return s.copyOf(v), nil
}

// Delete removes a record.
func (s *MemoryStore[K, T]) Delete(_ context.Context, key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[key]; !ok {
		return dao.ErrNotFound
	}
	delete(s.records, key)
	return nil
}

// List returns stored records accepted by the matcher.
func (s *MemoryStore[K, T]) List(_ context.Context, parameters ...*dao.Parameter) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*T, 0, len(s.records))
	for _, v := range s.records {
		if s.matcher != nil && !s.matcher(v, parameters) {
			continue
		}
		out = append(out, s.copyOf(v))
	}
	return out, nil
}

// Update applies fn to the stored record under the write lock.
func (s *MemoryStore[K, T]) Update(_ context.Context, key K, fn func(v *T) error) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.records[key]
	if !ok {
		return nil, dao.ErrNotFound
	}
	if err := fn(v); err != nil {
		return nil, err
	}
	return s.copyOf(v), nil
}

// NewMemoryStore creates a new MemoryStore; matcher may be nil to accept every record on List.
func NewMemoryStore[K comparable, T any](keySelector func(*T) K, matcher func(*T, []*dao.Parameter) bool) *MemoryStore[K, T] {
	return &MemoryStore[K, T]{
		records:     make(map[K]*T),
		keySelector: keySelector,
		matcher:     matcher,
	}
}

var _ dao.Service[string, struct{ ID string }] = (*MemoryStore[string, struct{ ID string }])(nil)
