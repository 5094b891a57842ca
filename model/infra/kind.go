package infra

import (
	"fmt"
	"strings"
)

// Kind represents infrastructure type tag
type Kind string

const (
	KindWSGram      Kind = "wsgram"
	KindGatekeeper  Kind = "gatekeeper"
	KindWMS         Kind = "wms"
	KindOCCI        Kind = "occi"
	KindROCCI       Kind = "rocci"
	KindSSH         Kind = "ssh"
	KindUnicore     Kind = "unicore"
	KindOurGrid     Kind = "ourgrid"
	KindBESGenesis2 Kind = "bes-genesis2"
	KindGOS         Kind = "gos"
)

var supportedKinds = map[Kind]bool{
	KindWSGram:     true,
	KindGatekeeper: true,
	KindWMS:        true,
	KindOCCI:       true,
	KindROCCI:      true,
	KindSSH:        true,
}

var knownUnsupportedKinds = map[Kind]bool{
	KindUnicore:     true,
	KindOurGrid:     true,
	KindBESGenesis2: true,
	KindGOS:         true,
}

// IsSupported returns true if a session can be built for the kind
func (k Kind) IsSupported() bool {
	return supportedKinds[k]
}

// IsKnown returns true for kinds recognised by the catalogue, supported or not
func (k Kind) IsKnown() bool {
	return supportedKinds[k] || knownUnsupportedKinds[k]
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind parses a type tag, rejecting unknown and unsupported tags
func ParseKind(tag string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(tag)))
	if kind.IsSupported() {
		return kind, nil
	}
	if kind.IsKnown() {
		return "", NewUnsupportedError("", fmt.Sprintf("infrastructure type %v is not supported yet", kind))
	}
	return "", NewUnsupportedError("", fmt.Sprintf("unknown infrastructure type: %q", tag))
}

// ResolveKind resolves kind from the type parameter or from the jobservice scheme
func ResolveKind(source Source) (Kind, error) {
	if tag, ok := Value(source, ParamType); ok && tag != "" {
		return ParseKind(tag)
	}
	jobService, ok := Value(source, ParamJobService)
	if !ok || jobService == "" {
		return "", NewConfigurationError("", fmt.Sprintf("neither %v nor %v parameter defined", ParamType, ParamJobService), nil)
	}
	index := strings.Index(jobService, ":")
	if index <= 0 {
		return "", NewConfigurationError("", fmt.Sprintf("invalid %v: %v, expected <type>:<address>", ParamJobService, jobService), nil)
	}
	return ParseKind(jobService[:index])
}
