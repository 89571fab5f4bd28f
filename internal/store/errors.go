package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrJobNotFound is returned when a query targets a job ID that does not
	// exist in the store.
	ErrJobNotFound = errors.New("translation job was not found")

	// ErrJobAlreadyExists is returned when an INSERT fails because a job with
	// the same ID is already persisted.
	ErrJobAlreadyExists = errors.New("translation job already exists")

	// ErrVersionConflict is returned when an optimistic-locking check fails:
	// the version supplied by the caller does not match the current version
	// stored in the database, meaning the job was finalized concurrently.
	ErrVersionConflict = errors.New("job version conflict")

	// ErrJobNotPending is returned when a finalize targets a job that has
	// already reached a terminal status. Terminal statuses are sticky.
	ErrJobNotPending = errors.New("job is not pending")

	// ErrCacheMiss is returned by [StatusCache.GetStatus] when the job status
	// is not present in the cache.
	ErrCacheMiss = errors.New("status cache miss")

	// SQL plumbing errors. Wrapped around driver errors so the handler layer
	// can map them to HTTP statuses without inspecting driver types.

	// ErrBuildingSQLQuery is returned when the squirrel query builder fails.
	ErrBuildingSQLQuery = errors.New("error building SQL query")

	// ErrExecutingQuery is returned when a statement fails to execute.
	ErrExecutingQuery = errors.New("error executing query")

	// ErrScanningRow is returned when a result row cannot be scanned into
	// the job model.
	ErrScanningRow = errors.New("error scanning row")
)
