package dao

// Parameter represents List filtering criterion, Value is a string or []string
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter creates a filtering criterion; multiple values match any of them
func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}
