package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrPackNotFound is returned when no archive is stored for a pack id.
	ErrPackNotFound = errors.New("pack is not found")

	// ErrInvalidPackID is returned when a pack id cannot be mapped to a file
	// name inside the data folder (empty, or containing path separators).
	ErrInvalidPackID = errors.New("invalid pack id")

	// ErrUnsupportedDSN is returned by [Open] when the DSN scheme names no
	// known driver.
	ErrUnsupportedDSN = errors.New("unsupported journal dsn")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan sync event rows")
)
