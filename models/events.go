package models

import "time"

// Event names published on job lifecycle transitions.
const (
	EventJobCompleted = "job.completed"
	EventJobErrored   = "job.errored"
)

// JobEvent is the payload fanned out to subscribers (SSE streams, the Redis
// status cache channel, and the AMQP queue) when a job reaches a terminal
// status.
type JobEvent struct {
	// Name is one of the Event* constants.
	Name string `json:"name"`

	JobID  string    `json:"job_id"`
	Status JobStatus `json:"status"`

	// FailureReason is populated only for EventJobErrored.
	FailureReason string `json:"failure_reason,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}

// NewJobEvent builds the lifecycle event matching the job's terminal status.
func NewJobEvent(job TranslationJob) JobEvent {
	name := EventJobCompleted
	if job.Status == JobStatusError {
		name = EventJobErrored
	}

	occurredAt := time.Now()
	if job.FinishedAt != nil {
		occurredAt = *job.FinishedAt
	}

	return JobEvent{
		Name:          name,
		JobID:         job.JobID,
		Status:        job.Status,
		FailureReason: job.FailureReason,
		OccurredAt:    occurredAt,
	}
}
