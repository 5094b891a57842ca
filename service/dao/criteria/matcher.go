package criteria

import (
	"github.com/viant/gridgate/service/dao"
)

// Match returns true if all parameters addressing one of the supplied fields accept the field value.
// Parameters referencing unknown fields are ignored.
func Match(fields map[string]string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil {
			continue
		}
		value, ok := fields[parameter.Name]
		if !ok {
			continue
		}
		if !matchValue(value, parameter.Value) {
			return false
		}
	}
	return true
}

func matchValue(value string, expected interface{}) bool {
	switch actual := expected.(type) {
	case string:
		return value == actual
	case []string:
		for _, candidate := range actual {
			if value == candidate {
				return true
			}
		}
		return false
	}
	return true
}
