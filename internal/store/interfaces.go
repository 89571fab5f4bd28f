// Package store implements the persistence layer of the translation service.
//
// The job store has three interchangeable backends selected by configuration:
// PostgreSQL (pgx), SQLite (mattn/go-sqlite3), and an in-memory map used by
// tests and zero-config deployments. An optional Redis layer caches terminal
// statuses and publishes lifecycle transitions.
package store

import (
	"context"
	"time"

	"github.com/voxlate/voxlate/models"
)

// JobRepository is the persistence contract for translation jobs.
type JobRepository interface {
	// Create persists a new job. Returns [ErrJobAlreadyExists] if the job ID
	// is already taken.
	Create(ctx context.Context, job models.TranslationJob) error

	// Get returns the job with the given ID, or [ErrJobNotFound].
	Get(ctx context.Context, jobID string) (models.TranslationJob, error)

	// ListDue returns up to limit pending jobs whose processing window has
	// elapsed at the given moment, ordered by completion deadline.
	ListDue(ctx context.Context, now time.Time, limit int) ([]models.TranslationJob, error)

	// Finalize transitions a pending job to the given terminal status.
	// The update is guarded by the job's version: if the stored version
	// differs (the job was finalized concurrently) [ErrVersionConflict] is
	// returned and the job is left untouched.
	Finalize(ctx context.Context, jobID string, status models.JobStatus, failureReason string, finishedAt time.Time, version int64) error

	// Close releases the underlying resources.
	Close() error
}

// StatusCache is an optional read-through cache for terminal job statuses
// plus a pub/sub fan-out for lifecycle events.
type StatusCache interface {
	// GetStatus returns the cached status of a job, or [ErrCacheMiss].
	GetStatus(ctx context.Context, jobID string) (models.JobStatus, error)

	// SetStatus caches the job's terminal status.
	SetStatus(ctx context.Context, job models.TranslationJob) error

	// PublishEvent broadcasts a lifecycle event to cache subscribers.
	PublishEvent(ctx context.Context, event models.JobEvent) error

	// Close releases the underlying connection.
	Close() error
}
