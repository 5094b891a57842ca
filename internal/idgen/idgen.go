package idgen

import "github.com/google/uuid"

// NewFunc returns a new identifier
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier
func New() string { return NewFunc() }
