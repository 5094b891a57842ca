package jobservice

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-logr/logr"
	"github.com/viant/gridgate/internal/clock"
	"github.com/viant/gridgate/internal/idgen"
	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/model/job"
	"github.com/viant/gridgate/service/dao"
	"github.com/viant/gridgate/service/event"
	"github.com/viant/gridgate/session"
	"github.com/viant/gridgate/tracing"
)

// ErrClosed is returned by a closed handle
var ErrClosed = errors.New("job service closed")

type execution struct {
	cancel   context.CancelFunc
	done     chan struct{}
	canceled bool
	finished bool
}

// Handle runs jobs through a backend runner and keeps their state in a job store
type Handle struct {
	binding   *Binding
	runner    Runner
	jobs      dao.Service[string, job.Job]
	publisher *event.Publisher[job.Job]
	config    Config
	logger    logr.Logger
	running   map[string]*execution
	closed    bool
	mux       sync.Mutex
}

// Endpoint returns bound endpoint
func (h *Handle) Endpoint() *infra.Endpoint {
	return h.binding.Endpoint
}

// Session returns session opened for this handle
func (h *Handle) Session() *session.Session {
	return h.binding.Session
}

// Submit stores a new job and starts it asynchronously
func (h *Handle) Submit(ctx context.Context, description *job.Description) (ret *job.Job, err error) {
	ctx, span := tracing.StartSpan(ctx, "job.submit", "CLIENT")
	defer func() { tracing.EndSpan(span, err) }()
	infrastructureID := h.binding.Infrastructure.ID
	if description == nil || description.Executable == "" {
		return nil, infra.NewConfigurationError(infrastructureID, "job executable was empty", nil)
	}
	now := clock.Now()
	aJob := &job.Job{
		ID:               idgen.New(),
		InfrastructureID: infrastructureID,
		Endpoint:         h.binding.Endpoint.String(),
		Description:      description,
		State:            job.StateSubmitted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if h.binding.Task != nil {
		aJob.TaskID = h.binding.Task.ID
	}
	span.WithAttributes(map[string]string{"job": aJob.ID, "infrastructure": infrastructureID})

	h.mux.Lock()
	if h.closed {
		h.mux.Unlock()
		return nil, ErrClosed
	}
	if err = h.jobs.Save(ctx, aJob); err != nil {
		h.mux.Unlock()
		return nil, fmt.Errorf("failed to save job %v: %w", aJob.ID, err)
	}
	runCtx, cancel := context.WithTimeout(context.Background(), h.config.Timeout(description.TimeoutMs))
	exec := &execution{cancel: cancel, done: make(chan struct{})}
	h.running[aJob.ID] = exec
	h.mux.Unlock()

	h.notify(ctx, aJob)
	go h.run(runCtx, exec, aJob.ID, description)
	h.logger.V(1).Info("job submitted", "job", aJob.ID, "infrastructure", infrastructureID, "executable", description.Executable)
	return aJob.Clone(), nil
}

func (h *Handle) run(ctx context.Context, exec *execution, id string, description *job.Description) {
	defer func() {
		exec.cancel()
		h.mux.Lock()
		delete(h.running, id)
		h.mux.Unlock()
		close(exec.done)
	}()
	h.update(ctx, id, func(j *job.Job) { j.State = job.StateRunning })
	result, err := h.runner.Run(ctx, description)

	h.mux.Lock()
	exec.finished = true
	canceled := exec.canceled
	h.mux.Unlock()
	h.update(context.Background(), id, func(j *job.Job) {
		if result != nil {
			j.Output = result.Stdout
			j.Stderr = result.Stderr
			j.ExitCode = result.ExitCode
		}
		switch {
		case err == nil && j.ExitCode == 0:
			j.State = job.StateDone
		case canceled:
			j.State = job.StateCanceled
		case err != nil:
			j.State = job.StateFailed
			j.Error = err.Error()
		default:
			j.State = job.StateFailed
			j.Error = fmt.Sprintf("exit code %v", j.ExitCode)
		}
	})
}

func (h *Handle) update(ctx context.Context, id string, mutate func(j *job.Job)) {
	aJob, err := h.jobs.Load(ctx, id)
	if err != nil {
		h.logger.Error(err, "failed to load job", "job", id)
		return
	}
	mutate(aJob)
	aJob.UpdatedAt = clock.Now()
	if err = h.jobs.Save(ctx, aJob); err != nil {
		h.logger.Error(err, "failed to save job", "job", id)
		return
	}
	h.logger.V(1).Info("job state changed", "job", id, "state", aJob.State)
	h.notify(ctx, aJob)
}

func (h *Handle) notify(ctx context.Context, aJob *job.Job) {
	if h.publisher == nil {
		return
	}
	eventContext := &event.Context{
		InfrastructureID: aJob.InfrastructureID,
		TaskID:           aJob.TaskID,
		JobID:            aJob.ID,
		EventType:        event.TypeJobState,
		Service:          "jobservice",
		Method:           string(aJob.State),
	}
	if h.binding.Session != nil {
		eventContext.SessionID = h.binding.Session.ID
	}
	if err := h.publisher.Publish(ctx, event.NewEvent(eventContext, *aJob.Clone())); err != nil {
		h.logger.Error(err, "failed to publish job event", "job", aJob.ID)
	}
}

// Status returns job snapshot
func (h *Handle) Status(ctx context.Context, id string) (*job.Job, error) {
	ret, err := h.jobs.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("job %v: %w", id, err)
	}
	return ret, nil
}

// Wait waits for job completion
func (h *Handle) Wait(ctx context.Context, id string) (*job.Job, error) {
	h.mux.Lock()
	exec, ok := h.running[id]
	h.mux.Unlock()
	if ok {
		select {
		case <-exec.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return h.Status(ctx, id)
}

// Cancel cancels running job, canceling finished job is a no-op
func (h *Handle) Cancel(ctx context.Context, id string) error {
	h.mux.Lock()
	exec, ok := h.running[id]
	ok = ok && !exec.finished
	if ok {
		exec.canceled = true
		exec.cancel()
	}
	h.mux.Unlock()
	if ok {
		h.logger.Info("job canceled", "job", id)
		return nil
	}
	_, err := h.Status(ctx, id)
	return err
}

// Close cancels running jobs and waits for them until ctx is done, then releases runner and session
func (h *Handle) Close(ctx context.Context) error {
	h.mux.Lock()
	if h.closed {
		h.mux.Unlock()
		return nil
	}
	h.closed = true
	var pending []*execution
	for _, exec := range h.running {
		if !exec.finished {
			exec.canceled = true
		}
		exec.cancel()
		pending = append(pending, exec)
	}
	h.mux.Unlock()
	var errs []error
wait:
	for _, exec := range pending {
		select {
		case <-exec.done:
		case <-ctx.Done():
			h.logger.Info("closing handle with unfinished jobs", "infrastructure", h.binding.Infrastructure.ID)
			errs = append(errs, ctx.Err())
			break wait
		}
	}
	if err := h.runner.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close runner: %w", err))
	}
	if h.binding.Session != nil {
		if err := h.binding.Session.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close session: %w", err))
		}
	}
	return errors.Join(errs...)
}

// NewHandle creates a handle for binding and runner
func NewHandle(binding *Binding, runner Runner, jobs dao.Service[string, job.Job], publisher *event.Publisher[job.Job], config Config, logger logr.Logger) *Handle {
	return &Handle{
		binding:   binding,
		runner:    runner,
		jobs:      jobs,
		publisher: publisher,
		config:    config,
		logger:    logger,
		running:   make(map[string]*execution),
	}
}

var _ Service = (*Handle)(nil)
