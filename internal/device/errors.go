package device

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no output device has the requested name.
	ErrNotFound = errors.New("device not found")

	// ErrUnsupported is returned by backends that cannot perform an operation.
	ErrUnsupported = errors.New("operation not supported by audio backend")
)

// RegistryError reports a failed platform query or property write.
// Status carries the platform status code when there is one.
type RegistryError struct {
	Op     string
	Status int
	Err    error
}

func (e *RegistryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

func (e *RegistryError) Unwrap() error {
	return e.Err
}

// IsRegistryError reports whether err is or wraps a RegistryError.
func IsRegistryError(err error) bool {
	var re *RegistryError
	return errors.As(err, &re)
}
