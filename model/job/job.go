package job

import "time"

// State represents job lifecycle state
type State string

const (
	StateSubmitted State = "submitted"
	StateRunning   State = "running"
	StateDone      State = "done"
	StateFailed    State = "failed"
	StateCanceled  State = "canceled"
)

// IsTerminal returns true if job reached its final state
func (s State) IsTerminal() bool {
	switch s {
	case StateDone, StateFailed, StateCanceled:
		return true
	}
	return false
}

// Description describes what to run
type Description struct {
	Executable  string            `json:"executable" yaml:"executable"`
	Arguments   []string          `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Environment map[string]string `json:"environment,omitempty" yaml:"environment,omitempty"`
	Directory   string            `json:"directory,omitempty" yaml:"directory,omitempty"`
	TimeoutMs   int               `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty"`
}

// Job represents submitted job
type Job struct {
	ID               string       `json:"id"`
	TaskID           string       `json:"taskId,omitempty"`
	InfrastructureID string       `json:"infrastructureId,omitempty"`
	Endpoint         string       `json:"endpoint,omitempty"`
	Description      *Description `json:"description,omitempty"`
	State            State        `json:"state"`
	Output           string       `json:"output,omitempty"`
	Stderr           string       `json:"stderr,omitempty"`
	ExitCode         int          `json:"exitCode"`
	Error            string       `json:"error,omitempty"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// Clone returns a copy safe to hand out to callers
func (j *Job) Clone() *Job {
	ret := *j
	return &ret
}
