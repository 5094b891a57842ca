package infra

import (
	"errors"
	"fmt"
)

// Category classifies infrastructure failures
type Category string

const (
	CategoryConfiguration  Category = "configuration"
	CategoryContext        Category = "context"
	CategoryAuthentication Category = "authentication"
	CategoryUnsupported    Category = "unsupported"
	CategoryNetwork        Category = "network"
)

// Sentinel errors; use errors.Is to test the category of an InfrastructureError.
var (
	ErrConfiguration  = errors.New("infra: configuration error")
	ErrContext        = errors.New("infra: context error")
	ErrAuthentication = errors.New("infra: authentication error")
	ErrUnsupported    = errors.New("infra: not supported")
	ErrNetwork        = errors.New("infra: network error")
)

var categorySentinels = map[Category]error{
	CategoryConfiguration:  ErrConfiguration,
	CategoryContext:        ErrContext,
	CategoryAuthentication: ErrAuthentication,
	CategoryUnsupported:    ErrUnsupported,
	CategoryNetwork:        ErrNetwork,
}

// InfrastructureError signals that an infrastructure cannot be used
type InfrastructureError struct {
	InfrastructureID string
	Message          string
	Category         Category
	Err              error
}

func (e *InfrastructureError) Error() string {
	msg := e.Message
	if e.InfrastructureID != "" {
		msg = fmt.Sprintf("infrastructure %v: %v", e.InfrastructureID, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// Is matches category sentinels
func (e *InfrastructureError) Is(target error) bool {
	return categorySentinels[e.Category] == target
}

func newError(category Category, infraID, message string, cause error) *InfrastructureError {
	return &InfrastructureError{InfrastructureID: infraID, Message: message, Category: category, Err: cause}
}

// NewConfigurationError reports missing or invalid parameter
func NewConfigurationError(infraID, message string, cause error) *InfrastructureError {
	return newError(CategoryConfiguration, infraID, message, cause)
}

// NewContextError reports context creation failure
func NewContextError(infraID, message string, cause error) *InfrastructureError {
	return newError(CategoryContext, infraID, message, cause)
}

// NewAuthenticationError reports rejected credentials
func NewAuthenticationError(infraID, message string, cause error) *InfrastructureError {
	return newError(CategoryAuthentication, infraID, message, cause)
}

// NewUnsupportedError reports unsupported infrastructure kind or operation
func NewUnsupportedError(infraID, message string) *InfrastructureError {
	return newError(CategoryUnsupported, infraID, message, nil)
}

// NewNetworkError reports remote access failure
func NewNetworkError(infraID, message string, cause error) *InfrastructureError {
	return newError(CategoryNetwork, infraID, message, cause)
}

// CategoryOf returns error category or empty string if err is not an InfrastructureError
func CategoryOf(err error) Category {
	var infraErr *InfrastructureError
	if errors.As(err, &infraErr) {
		return infraErr.Category
	}
	return ""
}

// WithInfrastructure stamps an infrastructure id on an InfrastructureError lacking one
func WithInfrastructure(err error, infraID string) error {
	var infraErr *InfrastructureError
	if errors.As(err, &infraErr) && infraErr.InfrastructureID == "" {
		infraErr.InfrastructureID = infraID
	}
	return err
}
