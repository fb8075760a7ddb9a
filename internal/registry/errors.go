package registry

import "errors"

var (
	// ErrStoreUnavailable marks a database that is missing, unreadable or has
	// no menu_items table. Callers treat it as fatal.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrNotFound is returned when a key or id matches no record.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when inserting a key that is already in use.
	ErrDuplicateKey = errors.New("option number already in use")
	// ErrColumnMissing is returned when a write needs an optional column the
	// schema does not have. Running `smenu migrate` adds it.
	ErrColumnMissing = errors.New("column missing from schema")
)
