package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/gridgate/service/messaging"
)

type jobState struct {
	JobID string
	State string
}

func TestService_PublisherOf(t *testing.T) {
	srv, err := New(messaging.VendorMemory)
	if !assert.NoError(t, err) {
		return
	}
	defer srv.Close()
	ctx := context.Background()

	publisher, err := PublisherOf[jobState](srv)
	assert.NoError(t, err)
	assert.NoError(t, publisher.Publish(ctx, NewEvent(&Context{EventType: TypeJobState}, jobState{JobID: "dropped"})))

	typed := make(chan *Event[jobState], 1)
	all := make(chan *Event[any], 1)
	assert.NoError(t, SetListenerOf[jobState](srv, func(e *Event[jobState]) { typed <- e }))
	srv.SetListener(func(e *Event[any]) { all <- e })

	assert.NoError(t, publisher.Publish(ctx, NewEvent(&Context{EventType: TypeJobState, JobID: "j1"}, jobState{JobID: "j1", State: "done"})))
	select {
	case e := <-typed:
		assert.Equal(t, "done", e.Data.State)
	case <-time.After(time.Second):
		t.Fatal("typed event was not delivered")
	}
	select {
	case e := <-all:
		assert.Equal(t, "j1", e.Context.JobID)
		assert.Equal(t, jobState{JobID: "j1", State: "done"}, e.Data)
	case <-time.After(time.Second):
		t.Fatal("untyped event was not delivered")
	}
}

func TestNew_UnsupportedVendor(t *testing.T) {
	_, err := New("kafka")
	assert.Error(t, err)
}
