package service

import (
	"context"

	"github.com/voxlate/voxlate/models"
)

// JobService owns the translation-job lifecycle: creation, status reads,
// finalization of due jobs, and fan-out of terminal transitions.
type JobService interface {
	// CreateJob registers a new simulated translation job. Request fields
	// are validated and clamped against the configured simulation window.
	CreateJob(ctx context.Context, req models.CreateJobRequest) (models.TranslationJob, error)

	// GetJob returns the full job document.
	GetJob(ctx context.Context, jobID string) (models.TranslationJob, error)

	// GetJobStatus returns the job's current status, consulting the status
	// cache before the authoritative store when a cache is configured.
	GetJobStatus(ctx context.Context, jobID string) (models.JobStatus, error)

	// EnsureLegacyJob creates the singleton job backing the public
	// GET /status endpoint. Must be called once before serving requests.
	EnsureLegacyJob(ctx context.Context) error

	// LegacyStatus returns the status of the singleton job backing the
	// public GET /status endpoint.
	LegacyStatus(ctx context.Context) (models.JobStatus, error)

	// FinalizeDueJobs transitions every due pending job (up to limit) to its
	// terminal status and fans the transitions out. Returns the number of
	// jobs finalized.
	FinalizeDueJobs(ctx context.Context, limit int) (int, error)

	// Subscribe registers a listener for the job's terminal transition.
	// The returned cancel function must be called to release the listener.
	Subscribe(jobID string) (<-chan models.JobEvent, func())
}

// AuthService issues and validates the bearer tokens protecting the jobs API.
type AuthService interface {
	// Enabled reports whether authentication is configured. When false the
	// jobs API is open and IssueToken always fails.
	Enabled() bool

	// IssueToken exchanges the configured API key for a signed JWT.
	IssueToken(ctx context.Context, apiKey string) (models.Token, error)

	// ParseToken validates a bearer token string and returns its claims.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService exposes application metadata.
type AppInfoService interface {
	// GetAppVersion returns the semantic version of the running server.
	GetAppVersion(ctx context.Context) string
}

// EventPublisher delivers job lifecycle events to an external broker.
// Implemented by the AMQP adapter; nil when no broker is configured.
type EventPublisher interface {
	Publish(ctx context.Context, event models.JobEvent) error
	Close() error
}
