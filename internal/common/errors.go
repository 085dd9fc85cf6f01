// Package common defines the sentinel errors shared by repositories, services
// and handlers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Auth errors.
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Input errors.
	ErrValidation = errors.New("validation error")
	ErrBadStatus  = errors.New("invalid task status")
)
