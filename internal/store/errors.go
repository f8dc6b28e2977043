package store

import "errors"

// Sentinel errors returned by the storage layer. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrLocalStorageUnavailable is returned when the backing store cannot
	// be read or written.
	ErrLocalStorageUnavailable = errors.New("local storage unavailable")

	// ErrSessionNotFound is returned by SessionStore.Profile when nobody is
	// signed in.
	ErrSessionNotFound = errors.New("session not found")

	// ErrUnknownStorageDriver is returned by NewClientStorages for a driver
	// other than sqlite, bolt or memory.
	ErrUnknownStorageDriver = errors.New("unknown storage driver")
)

// Low-level database operation errors, wrapped together with
// ErrLocalStorageUnavailable.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT or DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")
)
