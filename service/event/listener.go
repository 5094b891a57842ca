package event

import (
	"context"
	"sync"

	"github.com/go-logr/logr"
)

type Listener[T any] struct {
	publisher *Publisher[T]
	handler   func(*Event[T])
	logger    logr.Logger
	cancel    context.CancelFunc
	done      chan struct{}
	once      sync.Once
}

func NewListener[T any](publisher *Publisher[T], handler func(*Event[T]), logger logr.Logger) *Listener[T] {
	return &Listener[T]{
		publisher: publisher,
		handler:   handler,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Stop stops consuming and waits for the running handler to return
func (l *Listener[T]) Stop() {
	if l.cancel == nil {
		return
	}
	l.once.Do(func() {
		l.cancel()
		<-l.done
	})
}

func (l *Listener[T]) Start() {
	var ctx context.Context
	ctx, l.cancel = context.WithCancel(context.Background())
	go func() {
		defer close(l.done)
		for {
			event, err := l.publisher.Consume(ctx)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				l.logger.Error(err, "failed to consume event")
				continue
			}
			if event != nil {
				l.handler(event)
			}
		}
	}()
}
