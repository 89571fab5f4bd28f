package models

import "time"

// JobStatus is the lifecycle state of a translation job as reported by the
// status endpoints. The vocabulary is fixed: anything else on the wire must
// be treated by clients as [JobStatusError].
type JobStatus string

const (
	// JobStatusPending means the job is still being processed.
	JobStatusPending JobStatus = "pending"

	// JobStatusCompleted means the translation finished successfully.
	// Terminal and sticky: a completed job never changes again.
	JobStatusCompleted JobStatus = "completed"

	// JobStatusError means the translation failed. Terminal and sticky.
	JobStatusError JobStatus = "error"
)

// Terminal reports whether the status is final ("completed" or "error").
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusError
}

// Valid reports whether s is one of the known status values.
func (s JobStatus) Valid() bool {
	return s == JobStatusPending || s == JobStatusCompleted || s == JobStatusError
}

// TranslationJob is a single simulated video-translation task.
//
// A job is created pending with a processing window of Duration; once
// CompletesAt has passed the background runner finalizes it to "completed"
// or "error" (weighted by ErrorRate). Terminal jobs are immutable.
type TranslationJob struct {
	// JobID is the server-assigned UUID of the job.
	JobID string `json:"job_id"`

	// Status is the current lifecycle state of the job.
	Status JobStatus `json:"status"`

	// SourceLanguage and TargetLanguage are informational metadata supplied
	// at creation (e.g. "en" -> "es"). The server does not validate them
	// against any language registry.
	SourceLanguage string `json:"source_language,omitempty"`
	TargetLanguage string `json:"target_language,omitempty"`

	// Duration is the simulated processing time of the job.
	Duration time.Duration `json:"duration"`

	// ErrorRate is the probability in [0, 1] that the job finalizes
	// to "error" instead of "completed".
	ErrorRate float64 `json:"error_rate"`

	// FailureReason is set only for jobs that finished with "error".
	FailureReason string `json:"failure_reason,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletesAt time.Time  `json:"completes_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`

	// Version guards status transitions in the store: an update only
	// applies when the stored version matches, so a job can never be
	// finalized twice.
	Version int64 `json:"-"`
}

// Due reports whether the job's processing window has elapsed at the given
// moment and it is still pending finalization.
func (j *TranslationJob) Due(now time.Time) bool {
	return j.Status == JobStatusPending && !now.Before(j.CompletesAt)
}
