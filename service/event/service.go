package event

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/viant/gridgate/service/messaging"
	"github.com/viant/gridgate/service/messaging/memory"
)

type stopper interface{ Stop() }

// Service routes typed events through per-type queues
type Service struct {
	publisher         *Publisher[any]
	listener          *Listener[any]
	listening         *atomic.Bool
	typedPublishers   map[reflect.Type]any
	typedListener     map[reflect.Type]stopper
	mux               *sync.RWMutex
	queueVendor       messaging.Vendor
	memNewQueueConfig func(name string) memory.Config
	logger            logr.Logger
}

// SetListener sets a handler receiving events of every type
func (s *Service) SetListener(handler func(*Event[any])) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.listener != nil {
		s.listener.Stop()
	}
	s.listener = NewListener[any](s.publisher, handler, s.logger)
	s.listener.Start()
	s.listening.Store(true)
}

// Close stops all listeners
func (s *Service) Close() {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.listening.Store(false)
	if s.listener != nil {
		s.listener.Stop()
		s.listener = nil
	}
	for key, listener := range s.typedListener {
		listener.Stop()
		delete(s.typedListener, key)
		if publisher, ok := s.typedPublishers[key].(interface{ deactivate() }); ok {
			publisher.deactivate()
		}
	}
}

func New(queueVendor messaging.Vendor, opts ...Option) (*Service, error) {
	ret := &Service{
		queueVendor:     queueVendor,
		typedPublishers: make(map[reflect.Type]any),
		typedListener:   make(map[reflect.Type]stopper),
		mux:             &sync.RWMutex{},
		listening:       &atomic.Bool{},
		logger:          logr.Discard(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	switch queueVendor {
	case messaging.VendorMemory:
		if ret.memNewQueueConfig == nil {
			ret.memNewQueueConfig = func(string) memory.Config { return memory.DefaultConfig() }
		}
	default:
		return nil, fmt.Errorf("unsupported queue vendor: %s", queueVendor)
	}
	queue, err := QueueOf[Event[any]](ret, "any")
	if err != nil {
		return nil, err
	}
	ret.publisher = NewPublisher[any](queue)
	return ret, nil
}

func QueueOf[T any](s *Service, name string) (messaging.Queue[T], error) {
	switch s.queueVendor {
	case messaging.VendorMemory:
		return memory.NewQueue[T](s.memNewQueueConfig(name)), nil
	}
	return nil, fmt.Errorf("unsupported queue vendor: %s", s.queueVendor)
}

func keyOf[T any]() reflect.Type {
	rType := reflect.TypeOf((*T)(nil)).Elem()
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	return rType
}

// SetListenerOf sets a handler for events carrying T
func SetListenerOf[T any](s *Service, handler func(*Event[T])) error {
	publisher, err := PublisherOf[T](s)
	if err != nil {
		return err
	}
	key := keyOf[T]()
	s.mux.Lock()
	defer s.mux.Unlock()
	if prev, ok := s.typedListener[key]; ok {
		prev.Stop()
	}
	listener := NewListener[T](publisher, handler, s.logger)
	s.typedListener[key] = listener
	listener.Start()
	publisher.active.Store(true)
	return nil
}

// PublisherOf returns a publisher for the provided type
func PublisherOf[T any](s *Service) (*Publisher[T], error) {
	key := keyOf[T]()
	s.mux.Lock()
	defer s.mux.Unlock()
	if ret, ok := s.typedPublishers[key]; ok {
		return ret.(*Publisher[T]), nil
	}
	queue, err := QueueOf[Event[T]](s, key.String())
	if err != nil {
		return nil, err
	}
	publisher := NewPublisher[T](queue)
	publisher.active.Store(false)
	publisher.anyQueue = s.publisher.queue
	publisher.anyActive = s.listening
	s.typedPublishers[key] = publisher
	return publisher, nil
}
