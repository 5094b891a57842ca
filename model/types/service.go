package types

// Service is an action service exposed to workflow engines
type Service interface {
	Name() string
	Methods() Signatures
	Method(name string) (Executable, error)
}
