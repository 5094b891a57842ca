package ssh

import (
	"sort"
	"strings"

	"github.com/viant/gridgate/model/job"
)

// Command renders job description as a single shell command line
func Command(description *job.Description) string {
	builder := strings.Builder{}
	if description.Directory != "" {
		builder.WriteString("cd ")
		builder.WriteString(quote(description.Directory))
		builder.WriteString(" && ")
	}
	if len(description.Environment) > 0 {
		names := make([]string, 0, len(description.Environment))
		for name := range description.Environment {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			builder.WriteString(name)
			builder.WriteString("=")
			builder.WriteString(quote(description.Environment[name]))
			builder.WriteString(" ")
		}
	}
	builder.WriteString(description.Executable)
	for _, arg := range description.Arguments {
		builder.WriteString(" ")
		builder.WriteString(quote(arg))
	}
	return builder.String()
}

func quote(value string) string {
	if value == "" {
		return "''"
	}
	if strings.IndexFunc(value, isUnsafe) == -1 {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

func isUnsafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("-_./=:,+@%", r)
}
