package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/voxlate/voxlate/models"
)

// memoryJobRepository is a mutex-guarded in-memory [JobRepository].
// It backs tests and zero-config deployments where neither PostgreSQL nor
// SQLite is configured. Semantics (version guard, sticky terminal statuses)
// match the SQL repositories exactly.
type memoryJobRepository struct {
	mu   sync.RWMutex
	jobs map[string]models.TranslationJob
}

// NewMemoryJobRepository builds an empty in-memory [JobRepository].
func NewMemoryJobRepository() JobRepository {
	return &memoryJobRepository{
		jobs: make(map[string]models.TranslationJob),
	}
}

func (r *memoryJobRepository) Create(_ context.Context, job models.TranslationJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[job.JobID]; exists {
		return ErrJobAlreadyExists
	}

	r.jobs[job.JobID] = job
	return nil
}

func (r *memoryJobRepository) Get(_ context.Context, jobID string) (models.TranslationJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, exists := r.jobs[jobID]
	if !exists {
		return models.TranslationJob{}, ErrJobNotFound
	}

	return job, nil
}

func (r *memoryJobRepository) ListDue(_ context.Context, now time.Time, limit int) ([]models.TranslationJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	due := make([]models.TranslationJob, 0, limit)
	for _, job := range r.jobs {
		if job.Due(now) {
			due = append(due, job)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		return due[i].CompletesAt.Before(due[j].CompletesAt)
	})

	if len(due) > limit {
		due = due[:limit]
	}

	return due, nil
}

func (r *memoryJobRepository) Finalize(_ context.Context, jobID string, status models.JobStatus, failureReason string, finishedAt time.Time, version int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, exists := r.jobs[jobID]
	if !exists {
		return ErrJobNotFound
	}
	if job.Status.Terminal() {
		return ErrJobNotPending
	}
	if job.Version != version {
		return ErrVersionConflict
	}

	job.Status = status
	job.FailureReason = failureReason
	finished := finishedAt
	job.FinishedAt = &finished
	job.Version = version + 1

	r.jobs[jobID] = job
	return nil
}

func (r *memoryJobRepository) Close() error {
	return nil
}
