package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no visible record matches.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidArgument marks a call that breaks the store contract.
	ErrInvalidArgument = errors.New("invalid argument")
)

// StorageError wraps a failure of the persistence backend.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the operation ran out of time.
func (e *StorageError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// Wrap converts a backend error into a StorageError. Nil, not-found,
// invalid-argument and already wrapped errors pass through unchanged.
func Wrap(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidArgument) {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
