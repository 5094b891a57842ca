package jobservice

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/model/job"
	"github.com/viant/gridgate/service/dao"
	jobmemory "github.com/viant/gridgate/service/dao/job/memory"
	"github.com/viant/gridgate/service/event"
	"github.com/viant/gridgate/service/messaging"
	mmemory "github.com/viant/gridgate/service/messaging/memory"
	"github.com/viant/gridgate/session"
)

type fakeRunner struct {
	mux       sync.Mutex
	closed    bool
	afterEcho func()
}

func (f *fakeRunner) Run(ctx context.Context, description *job.Description) (*Result, error) {
	switch description.Executable {
	case "echo":
		if f.afterEcho != nil {
			f.afterEcho()
		}
		return &Result{Stdout: strings.Join(description.Arguments, " ")}, nil
	case "stubborn":
		time.Sleep(200 * time.Millisecond)
		return &Result{}, nil
	case "false":
		return &Result{Stderr: "failed", ExitCode: 1}, nil
	case "broken":
		return nil, errors.New("connection lost")
	case "sleep":
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return &Result{ExitCode: 127, Stderr: description.Executable + ": command not found"}, nil
}

func (f *fakeRunner) Close() error {
	f.mux.Lock()
	defer f.mux.Unlock()
	f.closed = true
	return nil
}

func (f *fakeRunner) isClosed() bool {
	f.mux.Lock()
	defer f.mux.Unlock()
	return f.closed
}

func newTestBinding() *Binding {
	infrastructure := infra.NewInfrastructure("ssh-1", infra.NewParameter("jobservice", "ssh://gridui:22"))
	endpoint, _ := infrastructure.Endpoint()
	return &Binding{
		Task:           &infra.Task{ID: "task-1", InfrastructureID: "ssh-1"},
		Infrastructure: infrastructure,
		Session:        session.New("ssh-1", infra.KindSSH, "bob"),
		Endpoint:       endpoint,
	}
}

func TestHandle_Submit(t *testing.T) {
	testCases := []struct {
		description  string
		job          *job.Description
		expectState  job.State
		expectOutput string
		expectStderr string
		expectError  string
	}{
		{description: "done", job: &job.Description{Executable: "echo", Arguments: []string{"hello", "grid"}}, expectState: job.StateDone, expectOutput: "hello grid"},
		{description: "non zero exit", job: &job.Description{Executable: "false"}, expectState: job.StateFailed, expectStderr: "failed", expectError: "exit code 1"},
		{description: "transport error", job: &job.Description{Executable: "broken"}, expectState: job.StateFailed, expectError: "connection lost"},
		{description: "timeout", job: &job.Description{Executable: "sleep", TimeoutMs: 20}, expectState: job.StateFailed, expectError: context.DeadlineExceeded.Error()},
	}
	for _, testCase := range testCases {
		handle := NewHandle(newTestBinding(), &fakeRunner{}, jobmemory.New(), nil, DefaultConfig(), logr.Discard())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		submitted, err := handle.Submit(ctx, testCase.job)
		if !assert.NoError(t, err, testCase.description) {
			cancel()
			continue
		}
		assert.Equal(t, job.StateSubmitted, submitted.State, testCase.description)
		assert.Equal(t, "task-1", submitted.TaskID, testCase.description)
		assert.Equal(t, "ssh://gridui:22", submitted.Endpoint, testCase.description)

		actual, err := handle.Wait(ctx, submitted.ID)
		cancel()
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expectState, actual.State, testCase.description)
		assert.Equal(t, testCase.expectOutput, actual.Output, testCase.description)
		assert.Equal(t, testCase.expectStderr, actual.Stderr, testCase.description)
		assert.Equal(t, testCase.expectError, actual.Error, testCase.description)
		assert.NoError(t, handle.Close(context.Background()))
	}
}

func TestHandle_SubmitInvalid(t *testing.T) {
	handle := NewHandle(newTestBinding(), &fakeRunner{}, jobmemory.New(), nil, DefaultConfig(), logr.Discard())
	_, err := handle.Submit(context.Background(), &job.Description{})
	assert.True(t, errors.Is(err, infra.ErrConfiguration))
	_, err = handle.Submit(context.Background(), nil)
	assert.True(t, errors.Is(err, infra.ErrConfiguration))
}

func TestHandle_Cancel(t *testing.T) {
	handle := NewHandle(newTestBinding(), &fakeRunner{}, jobmemory.New(), nil, DefaultConfig(), logr.Discard())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	submitted, err := handle.Submit(ctx, &job.Description{Executable: "sleep"})
	if !assert.NoError(t, err) {
		return
	}
	assert.NoError(t, handle.Cancel(ctx, submitted.ID))
	actual, err := handle.Wait(ctx, submitted.ID)
	assert.NoError(t, err)
	assert.Equal(t, job.StateCanceled, actual.State)

	assert.NoError(t, handle.Cancel(ctx, submitted.ID))
	assert.True(t, errors.Is(handle.Cancel(ctx, "unknown"), dao.ErrNotFound))
	_, err = handle.Status(ctx, "unknown")
	assert.True(t, errors.Is(err, dao.ErrNotFound))
}

func TestHandle_Close(t *testing.T) {
	binding := newTestBinding()
	aRunner := &fakeRunner{}
	handle := NewHandle(binding, aRunner, jobmemory.New(), nil, DefaultConfig(), logr.Discard())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	submitted, err := handle.Submit(ctx, &job.Description{Executable: "sleep"})
	if !assert.NoError(t, err) {
		return
	}
	assert.NoError(t, handle.Close(ctx))
	assert.True(t, aRunner.isClosed())
	assert.True(t, binding.Session.Closed())

	actual, err := handle.Status(ctx, submitted.ID)
	assert.NoError(t, err)
	assert.Equal(t, job.StateCanceled, actual.State)

	_, err = handle.Submit(ctx, &job.Description{Executable: "echo"})
	assert.True(t, errors.Is(err, ErrClosed))
	assert.NoError(t, handle.Close(ctx))
}

func TestHandle_Events(t *testing.T) {
	events, err := event.New(messaging.VendorMemory)
	if !assert.NoError(t, err) {
		return
	}
	defer events.Close()
	publisher, err := event.PublisherOf[job.Job](events)
	if !assert.NoError(t, err) {
		return
	}
	states := make(chan job.State, 10)
	assert.NoError(t, event.SetListenerOf[job.Job](events, func(e *event.Event[job.Job]) {
		assert.Equal(t, event.TypeJobState, e.Context.EventType)
		assert.Equal(t, "ssh-1", e.Context.InfrastructureID)
		states <- e.Data.State
	}))

	handle := NewHandle(newTestBinding(), &fakeRunner{}, jobmemory.New(), publisher, DefaultConfig(), logr.Discard())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	submitted, err := handle.Submit(ctx, &job.Description{Executable: "echo", Arguments: []string{"x"}})
	if !assert.NoError(t, err) {
		return
	}
	_, err = handle.Wait(ctx, submitted.ID)
	assert.NoError(t, err)

	var actual []job.State
	for len(actual) < 3 {
		select {
		case state := <-states:
			actual = append(actual, state)
		case <-ctx.Done():
			t.Fatalf("expected 3 job events, got %v", actual)
		}
	}
	assert.Equal(t, []job.State{job.StateSubmitted, job.StateRunning, job.StateDone}, actual)
}

func TestHandle_CloseExpired(t *testing.T) {
	binding := newTestBinding()
	aRunner := &fakeRunner{}
	handle := NewHandle(binding, aRunner, jobmemory.New(), nil, DefaultConfig(), logr.Discard())
	_, err := handle.Submit(context.Background(), &job.Description{Executable: "stubborn"})
	if !assert.NoError(t, err) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err = handle.Close(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, aRunner.isClosed())
	assert.True(t, binding.Session.Closed())
	assert.NoError(t, handle.Close(context.Background()))
}

func TestHandle_CancelAfterRun(t *testing.T) {
	aRunner := &fakeRunner{}
	handle := NewHandle(newTestBinding(), aRunner, jobmemory.New(), nil, DefaultConfig(), logr.Discard())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ids := make(chan string, 1)
	aRunner.afterEcho = func() {
		assert.NoError(t, handle.Cancel(ctx, <-ids))
	}
	submitted, err := handle.Submit(ctx, &job.Description{Executable: "echo", Arguments: []string{"finished"}})
	if !assert.NoError(t, err) {
		return
	}
	ids <- submitted.ID
	actual, err := handle.Wait(ctx, submitted.ID)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, job.StateDone, actual.State)
	assert.Equal(t, "finished", actual.Output)
	assert.NoError(t, handle.Close(ctx))
}

func TestHandle_ListenerUsesHandle(t *testing.T) {
	events, err := event.New(messaging.VendorMemory, event.WithNewMemoryQueueConfig(func(name string) mmemory.Config {
		config := mmemory.DefaultConfig()
		config.QueueBuffer = 1
		return config
	}))
	if !assert.NoError(t, err) {
		return
	}
	defer events.Close()
	publisher, err := event.PublisherOf[job.Job](events)
	if !assert.NoError(t, err) {
		return
	}
	handle := NewHandle(newTestBinding(), &fakeRunner{}, jobmemory.New(), publisher, DefaultConfig(), logr.Discard())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, event.SetListenerOf[job.Job](events, func(e *event.Event[job.Job]) {
		_ = handle.Cancel(ctx, e.Data.ID)
	}))

	done := make(chan error, 1)
	go func() {
		for i := 0; i < 10; i++ {
			if _, err := handle.Submit(ctx, &job.Description{Executable: "sleep"}); err != nil {
				done <- err
				return
			}
		}
		done <- handle.Close(ctx)
	}()
	select {
	case err = <-done:
		assert.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("handle blocked while a listener was using it")
	}
}
