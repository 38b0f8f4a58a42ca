package database

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable is matched by every failure that comes from the
	// document store itself: no client configured or a driver error.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrUnknownCollection  = errors.New("unknown collection")
	ErrIdentifierInBody   = errors.New("document body must not contain _id")
	ErrInvalidID          = errors.New("invalid object id")
)

// StorageError wraps a driver error with the operation that produced it.
type StorageError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	if e.Collection == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is reports every StorageError as ErrStorageUnavailable.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorageUnavailable
}
