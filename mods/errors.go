package mods

import (
	"errors"
	"fmt"
)

// Sentinel errors for mod operations
var (
	// ErrNotFound means the requested mod identifier has no record in the
	// latest scan, or a required metadata sidecar is absent.
	ErrNotFound = errors.New("mod not found")

	// ErrInvalidInput covers unsupported file extensions, malformed paths
	// and names that sanitize to nothing.
	ErrInvalidInput = errors.New("invalid input")
)

// LockError is returned when a directory deletion kept failing after the
// retry budget was exhausted, which usually means another process holds a
// file open inside it.
type LockError struct {
	Path     string
	Attempts int
	Err      error
}

func (e *LockError) Error() string {
	return fmt.Sprintf("failed to delete %s after %d attempts: %v", e.Path, e.Attempts, e.Err)
}

func (e *LockError) Unwrap() error {
	return e.Err
}
