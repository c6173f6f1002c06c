package domain

import "errors"

var (
	// ErrNotFound is returned by stores when no row matches the lookup key.
	ErrNotFound = errors.New("record not found")
	// ErrStaleWrite is returned when an update matched no row, i.e. the row
	// was removed or changed underneath the writer.
	ErrStaleWrite = errors.New("stale write: no row matched")
	// ErrDuplicate is returned when the store rejects a write on a unique key.
	ErrDuplicate = errors.New("duplicate key")
)
