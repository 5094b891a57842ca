package event

import (
	"context"
	"sync/atomic"

	"github.com/viant/gridgate/internal/clock"
	"github.com/viant/gridgate/service/messaging"
)

// Publisher publishes events of T; events are dropped while nobody listens
type Publisher[T any] struct {
	queue     messaging.Queue[Event[T]]
	active    atomic.Bool
	anyQueue  messaging.Queue[Event[any]]
	anyActive *atomic.Bool
}

func NewPublisher[T any](queue messaging.Queue[Event[T]]) *Publisher[T] {
	ret := &Publisher[T]{
		queue: queue,
	}
	ret.active.Store(true)
	return ret
}

// Publish publishes event to typed queue, and mirrors it to the untyped one when it has a listener
func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	event.CreatedAt = clock.Now()
	if p.anyQueue != nil && p.anyActive != nil && p.anyActive.Load() {
		if err := p.anyQueue.Publish(ctx, &Event[any]{
			Context:   event.Context,
			CreatedAt: event.CreatedAt,
			Metadata:  event.Metadata,
			Data:      event.Data,
		}); err != nil {
			return err
		}
	}
	if !p.active.Load() {
		return nil
	}
	return p.queue.Publish(ctx, event)
}

func (p *Publisher[T]) Consume(ctx context.Context) (*Event[T], error) {
	msg, err := p.queue.Consume(ctx)
	if err != nil || msg == nil {
		return nil, err
	}
	if err = msg.Ack(); err != nil {
		return nil, err
	}
	return msg.T(), nil
}

func (p *Publisher[T]) deactivate() { p.active.Store(false) }
