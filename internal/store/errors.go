package store

import (
	"errors"
	"fmt"
)

var (
	ErrRead            = errors.New("error when reading todo storage")
	ErrWrite           = errors.New("error when writing todo storage")
	ErrMalformedRecord = errors.New("malformed todo record")
	ErrDuplicateID     = errors.New("todo id already exists")
)

// BackendError wraps a native error from the database driver.
// It also matches ErrRead or ErrWrite depending on the operation.
type BackendError struct {
	Op    string
	Write bool
	Err   error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

func (e *BackendError) Is(target error) bool {
	if e.Write {
		return target == ErrWrite
	}
	return target == ErrRead
}

// ReadFailure wraps err so that it matches ErrRead.
func ReadFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrRead, err)
}

// WriteFailure wraps err so that it matches ErrWrite.
func WriteFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrWrite, err)
}
