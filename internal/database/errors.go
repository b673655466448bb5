package database

import "errors"

var (
	// ErrNotFound is returned when a cache entry or property does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDatabaseMissing is returned by Open when CreateIfNotExists is false
	// and no database file exists.
	ErrDatabaseMissing = errors.New("database does not exist")
)
