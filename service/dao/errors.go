package dao

import "errors"

// Sentinel errors returned by DAO implementations; test with errors.Is.
var (
	// ErrNotFound is returned when the requested infrastructure or job does not exist.
	ErrNotFound = errors.New("dao: not found")

	// ErrInvalidID indicates that the supplied ID/key is empty or otherwise invalid.
	ErrInvalidID = errors.New("dao: invalid id")

	// ErrNilEntity is returned when the caller attempts to persist a nil pointer.
	ErrNilEntity = errors.New("dao: nil entity")
)
