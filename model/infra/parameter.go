package infra

// Parameter represents a named infrastructure setting
type Parameter struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// NewParameter creates a parameter
func NewParameter(name, value string) *Parameter {
	return &Parameter{Name: name, Value: value}
}

// Parameters represents an ordered parameter list
type Parameters []*Parameter

// Lookup returns the value of the first parameter with matching name
func (p Parameters) Lookup(name string) (string, bool) {
	for _, candidate := range p {
		if candidate != nil && candidate.Name == name {
			return candidate.Value, true
		}
	}
	return "", false
}

// Value returns parameter value or defaultValue when parameter is not defined
func (p Parameters) Value(name, defaultValue string) string {
	if value, ok := p.Lookup(name); ok {
		return value
	}
	return defaultValue
}

// Map indexes parameters by name, later entries override earlier ones
func (p Parameters) Map() ParameterMap {
	ret := make(ParameterMap, len(p))
	for _, param := range p {
		ret.Set(param)
	}
	return ret
}

// ParameterMap represents parameters keyed by name
type ParameterMap map[string]*Parameter

// Set adds or replaces a parameter
func (m ParameterMap) Set(param *Parameter) {
	if param == nil {
		return
	}
	m[param.Name] = param
}

// Lookup returns parameter value
func (m ParameterMap) Lookup(name string) (string, bool) {
	param, ok := m[name]
	if !ok || param == nil {
		return "", false
	}
	return param.Value, true
}

// Value returns parameter value or defaultValue when parameter is not defined
func (m ParameterMap) Value(name, defaultValue string) string {
	if value, ok := m.Lookup(name); ok {
		return value
	}
	return defaultValue
}

// Clone returns a shallow copy
func (m ParameterMap) Clone() ParameterMap {
	ret := make(ParameterMap, len(m))
	for k, v := range m {
		ret[k] = v
	}
	return ret
}

// Source represents any parameter source
type Source interface {
	Lookup(name string) (string, bool)
}

// Value returns parameter value from a source, empty string and false when absent
func Value(source Source, name string) (string, bool) {
	if source == nil {
		return "", false
	}
	return source.Lookup(name)
}

// ValueOrDefault returns parameter value from a source or defaultValue
func ValueOrDefault(source Source, name, defaultValue string) string {
	if value, ok := Value(source, name); ok {
		return value
	}
	return defaultValue
}
