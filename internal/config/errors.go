package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidJobsConfigs indicates invalid job simulation settings
	// (for example, an error rate outside [0,1] or an inverted duration window).
	ErrInvalidJobsConfigs = errors.New("invalid jobs configuration")
	// ErrInvalidWorkersConfigs indicates invalid job runner settings
	// (a non-positive batch size or tick interval).
	ErrInvalidWorkersConfigs = errors.New("invalid workers configuration")
	// ErrInvalidStorageConfigs indicates conflicting storage settings
	// (for example, both a PostgreSQL DSN and a SQLite path configured).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAuthConfigs indicates partially configured authentication
	// (an API key without a sign key, or the reverse).
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidClientConfigs indicates conflicting watcher CLI settings
	// (submitting a new job while also naming an existing one).
	ErrInvalidClientConfigs = errors.New("invalid client configuration")
)
