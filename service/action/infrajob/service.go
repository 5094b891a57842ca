package infrajob

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/model/types"
	"github.com/viant/gridgate/service/jobservice"
	"github.com/viant/gridgate/session"
)

// Name is the action service name
const Name = "infra/job"

// Service exposes session building and job submission as action methods
type Service struct {
	factory         *jobservice.Factory
	infrastructures jobservice.InfrastructureLoader
	sessionOptions  []session.Option
	handles         map[string]jobservice.Service
	mux             sync.Mutex
	wg              sync.WaitGroup
}

// Name returns the service name
func (s *Service) Name() string {
	return Name
}

// Methods returns the service methods
func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "session",
			Description: "Builds an authenticated session for an infrastructure and describes its context.",
			Input:       reflect.TypeOf(&SessionInput{}),
			Output:      reflect.TypeOf(&SessionOutput{}),
		},
		{
			Name:        "submit",
			Description: "Binds a task to its infrastructure and submits a job.",
			Input:       reflect.TypeOf(&SubmitInput{}),
			Output:      reflect.TypeOf(&JobOutput{}),
		},
		{
			Name:        "status",
			Description: "Returns job state.",
			Input:       reflect.TypeOf(&JobInput{}),
			Output:      reflect.TypeOf(&JobOutput{}),
		},
		{
			Name:        "cancel",
			Description: "Cancels running job.",
			Input:       reflect.TypeOf(&JobInput{}),
			Output:      reflect.TypeOf(&JobOutput{}),
		},
	}
}

// Method returns the specified method
func (s *Service) Method(name string) (types.Executable, error) {
	switch name {
	case "session":
		return s.session, nil
	case "submit":
		return s.submit, nil
	case "status":
		return s.status, nil
	case "cancel":
		return s.cancel, nil
	}
	return nil, types.NewMethodNotFoundError(name)
}

func (s *Service) session(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*SessionInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*SessionOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	infrastructure := input.Infrastructure
	if infrastructure == nil {
		if s.infrastructures == nil {
			return infra.NewConfigurationError(input.InfrastructureID, "infrastructure store was not configured", nil)
		}
		var err error
		if infrastructure, err = s.infrastructures.Load(ctx, input.InfrastructureID); err != nil {
			return infra.NewConfigurationError(input.InfrastructureID, "infrastructure not found", err)
		}
	}
	options := append(append([]session.Option{}, s.sessionOptions...), session.WithUser(input.User))
	aSession, err := session.NewBuilder(infrastructure, options...).Build(ctx)
	if err != nil {
		return err
	}
	defer aSession.Close()
	output.SessionID = aSession.ID
	output.Kind = aSession.Kind.String()
	for _, sessionContext := range aSession.Contexts() {
		output.Contexts = append(output.Contexts, &ContextInfo{Type: string(sessionContext.Type), Attributes: sessionContext.Attributes()})
	}
	return nil
}

func (s *Service) submit(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*SubmitInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*JobOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	handle, err := s.factory.Create(ctx, input.Task)
	if err != nil {
		return err
	}
	submitted, err := handle.Submit(ctx, input.description())
	if err != nil {
		_ = handle.Close(ctx)
		return err
	}
	s.mux.Lock()
	s.handles[submitted.ID] = handle
	s.mux.Unlock()
	s.wg.Add(1)
	go s.release(submitted.ID, handle)
	if !input.Wait {
		output.Job = submitted
		return nil
	}
	output.Job, err = handle.Wait(ctx, submitted.ID)
	return err
}

// release closes handle once its job finishes
func (s *Service) release(id string, handle jobservice.Service) {
	defer s.wg.Done()
	_, _ = handle.Wait(context.Background(), id)
	s.mux.Lock()
	delete(s.handles, id)
	s.mux.Unlock()
	_ = handle.Close(context.Background())
}

func (s *Service) status(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*JobInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*JobOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	aJob, err := s.factory.Jobs().Load(ctx, input.JobID)
	if err != nil {
		return fmt.Errorf("job %v: %w", input.JobID, err)
	}
	output.Job = aJob
	return nil
}

func (s *Service) cancel(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*JobInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*JobOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	s.mux.Lock()
	handle, ok := s.handles[input.JobID]
	s.mux.Unlock()
	if ok {
		if err := handle.Cancel(ctx, input.JobID); err != nil {
			return err
		}
		if _, err := handle.Wait(ctx, input.JobID); err != nil {
			return err
		}
	}
	return s.status(ctx, in, output)
}

// Close cancels jobs still running and waits for their handles to be released
func (s *Service) Close(ctx context.Context) error {
	s.mux.Lock()
	for id, handle := range s.handles {
		_ = handle.Cancel(ctx, id)
	}
	s.mux.Unlock()
	s.wg.Wait()
	return nil
}

// New creates an action service
func New(factory *jobservice.Factory, infrastructures jobservice.InfrastructureLoader, sessionOptions ...session.Option) *Service {
	return &Service{
		factory:         factory,
		infrastructures: infrastructures,
		sessionOptions:  sessionOptions,
		handles:         make(map[string]jobservice.Service),
	}
}

var _ types.Service = (*Service)(nil)
