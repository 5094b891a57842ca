package infra

// Infrastructure represents a configured remote execution target
type Infrastructure struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name,omitempty" yaml:"name,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Enabled     *bool      `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Parameters  Parameters `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// IsEnabled returns true unless infrastructure was explicitly disabled
func (i *Infrastructure) IsEnabled() bool {
	if i.Enabled == nil {
		return true
	}
	return *i.Enabled
}

// Kind resolves infrastructure kind from its parameters
func (i *Infrastructure) Kind() (Kind, error) {
	kind, err := ResolveKind(i.Parameters.Map())
	if err != nil {
		return "", WithInfrastructure(err, i.ID)
	}
	return kind, nil
}

// Endpoint resolves the job service endpoint
func (i *Infrastructure) Endpoint() (*Endpoint, error) {
	value, ok := i.Parameters.Map().Lookup(ParamJobService)
	if !ok || value == "" {
		return nil, NewConfigurationError(i.ID, "missing "+ParamJobService+" parameter", nil)
	}
	endpoint, err := ParseEndpoint(value)
	if err != nil {
		return nil, WithInfrastructure(err, i.ID)
	}
	return endpoint, nil
}

// NewInfrastructure creates an infrastructure
func NewInfrastructure(id string, params ...*Parameter) *Infrastructure {
	return &Infrastructure{ID: id, Parameters: params}
}
