package store

import (
	"errors"
	"fmt"
)

// ErrDataUnavailable marks a store that is missing, unreadable, or holds rows
// that cannot be decoded. It is recoverable: only the view that hit it stops.
var ErrDataUnavailable = errors.New("data unavailable")

// UnavailableError carries the resource and location that could not be read.
type UnavailableError struct {
	Resource string
	Path     string
	Err      error
}

func unavailable(resource, path string, err error) error {
	return &UnavailableError{Resource: resource, Path: path, Err: err}
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("store: %s unavailable at %s: %v", e.Resource, e.Path, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDataUnavailable) hold for every UnavailableError.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrDataUnavailable
}

// Hints returns operator-facing guidance naming the attempted location.
func (e *UnavailableError) Hints() []string {
	return []string{
		"Cave is currently searching for " + e.Path,
		"Check that the configured subnet root is correct and that the file exists at " + e.Path,
		"If the file exists, ensure a miner and validator are running",
	}
}
