package store

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a lookup of an id that does not exist. The store itself
// reports absence with a boolean; callers wrap ErrNotFound when they need an error.
var ErrNotFound = errors.New("record not found")

// PersistenceError reports an I/O or encoding failure inside the store.
// The operation did not take effect; callers should not retry automatically.
type PersistenceError struct {
	// Op is the store operation: get_all, get, create, update, delete, ping.
	Op string

	// Collection is the collection name, if any.
	Collection string

	// ID is the record id, if the operation targeted one.
	ID string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	switch {
	case e.Collection != "" && e.ID != "":
		return fmt.Sprintf("store: %s %s/%s: %v", e.Op, e.Collection, e.ID, e.Err)
	case e.Collection != "":
		return fmt.Sprintf("store: %s %s: %v", e.Op, e.Collection, e.Err)
	default:
		return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
	}
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistence returns true if err is or wraps a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
