package infra

// Task represents a unit of work targeting an infrastructure
type Task struct {
	ID               string            `json:"id" yaml:"id"`
	InfrastructureID string            `json:"infrastructureId,omitempty" yaml:"infrastructureId,omitempty"`
	Infrastructure   *Infrastructure   `json:"infrastructure,omitempty" yaml:"infrastructure,omitempty"`
	User             string            `json:"user,omitempty" yaml:"user,omitempty"`
	Executable       string            `json:"executable,omitempty" yaml:"executable,omitempty"`
	Arguments        []string          `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Environment      map[string]string `json:"environment,omitempty" yaml:"environment,omitempty"`
	Directory        string            `json:"directory,omitempty" yaml:"directory,omitempty"`
}

// TargetID returns the infrastructure identifier referenced by the task
func (t *Task) TargetID() string {
	if t.Infrastructure != nil && t.Infrastructure.ID != "" {
		return t.Infrastructure.ID
	}
	return t.InfrastructureID
}
