package infrajob

import (
	"github.com/viant/gridgate/model/infra"
	"github.com/viant/gridgate/model/job"
)

// SessionInput identifies infrastructure to open a session for
type SessionInput struct {
	InfrastructureID string                `json:"infrastructureId,omitempty"`
	Infrastructure   *infra.Infrastructure `json:"infrastructure,omitempty"`
	User             string                `json:"user,omitempty"`
}

// ContextInfo describes a session context without revealing its secrets
type ContextInfo struct {
	Type       string   `json:"type"`
	Attributes []string `json:"attributes"`
}

// SessionOutput describes a built session
type SessionOutput struct {
	SessionID string         `json:"sessionId"`
	Kind      string         `json:"kind"`
	Contexts  []*ContextInfo `json:"contexts"`
}

// SubmitInput binds task to infrastructure and submits job
type SubmitInput struct {
	Task *infra.Task      `json:"task"`
	Job  *job.Description `json:"job,omitempty"`
	Wait bool             `json:"wait,omitempty"`
}

// JobInput identifies a job
type JobInput struct {
	JobID string `json:"jobId"`
}

// JobOutput returns job snapshot
type JobOutput struct {
	Job *job.Job `json:"job"`
}

func (i *SubmitInput) description() *job.Description {
	if i.Job != nil {
		return i.Job
	}
	if i.Task == nil {
		return nil
	}
	return &job.Description{
		Executable:  i.Task.Executable,
		Arguments:   i.Task.Arguments,
		Environment: i.Task.Environment,
		Directory:   i.Task.Directory,
	}
}
