package jobservice

import (
	"context"

	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/model/job"
	"github.com/viant/gridgate/session"
)

// Service represents a live job submission handle bound to an infrastructure endpoint
type Service interface {
	Endpoint() *infra.Endpoint

	Session() *session.Session

	Submit(ctx context.Context, description *job.Description) (*job.Job, error)

	Status(ctx context.Context, id string) (*job.Job, error)

	// Wait blocks until job reaches a terminal state or ctx is done
	Wait(ctx context.Context, id string) (*job.Job, error)

	Cancel(ctx context.Context, id string) error

	// Close cancels running jobs and releases session and transport
	Close(ctx context.Context) error
}

// Binding carries everything a backend needs to open a transport
type Binding struct {
	Task           *infra.Task
	Infrastructure *infra.Infrastructure
	Session        *session.Session
	Endpoint       *infra.Endpoint
}
