package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/internal/store"
	"github.com/voxlate/voxlate/internal/utils"
	"github.com/voxlate/voxlate/models"
)

// failureReasons is the pool of simulated failure messages attached to jobs
// that finalize to "error".
var failureReasons = []string{
	"voice synthesis failed",
	"subtitle alignment timed out",
	"source audio could not be transcribed",
	"target language model unavailable",
}

type jobService struct {
	repo      store.JobRepository
	cache     store.StatusCache
	publisher EventPublisher

	cfg    config.Jobs
	idGen  *utils.UUIDGenerator
	hub    *statusHub
	logger *logger.Logger

	// randFloat decides job outcomes; swapped in tests for determinism.
	randFloat func() float64

	legacyJobID string
}

// NewJobService builds a [JobService] over the given storages. cache and
// publisher may be nil when the corresponding backends are not configured.
func NewJobService(storages *store.Storages, publisher EventPublisher, cfg config.Jobs, log *logger.Logger) JobService {
	return &jobService{
		repo:      storages.Jobs,
		cache:     storages.Cache,
		publisher: publisher,
		cfg:       cfg,
		idGen:     utils.NewUUIDGenerator(),
		hub:       newStatusHub(),
		logger:    log,
		randFloat: rand.Float64,
	}
}

func (s *jobService) CreateJob(ctx context.Context, req models.CreateJobRequest) (models.TranslationJob, error) {
	errorRate := s.cfg.ErrorRate
	if req.ErrorRate != nil {
		if *req.ErrorRate < 0 || *req.ErrorRate > 1 {
			return models.TranslationJob{}, ErrInvalidErrorRate
		}
		errorRate = *req.ErrorRate
	}

	duration := s.pickDuration(req.Duration.Std())

	now := time.Now()
	job := models.TranslationJob{
		JobID:          s.idGen.Generate(),
		Status:         models.JobStatusPending,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
		Duration:       duration,
		ErrorRate:      errorRate,
		CreatedAt:      now,
		CompletesAt:    now.Add(duration),
		Version:        1,
	}

	if err := s.repo.Create(ctx, job); err != nil {
		return models.TranslationJob{}, fmt.Errorf("create job: %w", err)
	}

	s.logger.Info().
		Str("job_id", job.JobID).
		Dur("duration", job.Duration).
		Float64("error_rate", job.ErrorRate).
		Msg("translation job created")

	return job, nil
}

func (s *jobService) GetJob(ctx context.Context, jobID string) (models.TranslationJob, error) {
	if jobID == "" {
		return models.TranslationJob{}, ErrInvalidJobID
	}

	return s.repo.Get(ctx, jobID)
}

func (s *jobService) GetJobStatus(ctx context.Context, jobID string) (models.JobStatus, error) {
	if jobID == "" {
		return "", ErrInvalidJobID
	}

	if s.cache != nil {
		status, err := s.cache.GetStatus(ctx, jobID)
		if err == nil {
			return status, nil
		}
		if !errors.Is(err, store.ErrCacheMiss) {
			// degraded cache must not take status reads down
			s.logger.Warn().Err(err).Str("job_id", jobID).Msg("status cache read failed")
		}
	}

	job, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return "", err
	}

	if s.cache != nil && job.Status.Terminal() {
		if err := s.cache.SetStatus(ctx, job); err != nil {
			s.logger.Warn().Err(err).Str("job_id", jobID).Msg("status cache write failed")
		}
	}

	return job.Status, nil
}

// EnsureLegacyJob creates the singleton job that backs GET /status.
// Called once at startup before the HTTP server accepts requests.
func (s *jobService) EnsureLegacyJob(ctx context.Context) error {
	job, err := s.CreateJob(ctx, models.CreateJobRequest{})
	if err != nil {
		return fmt.Errorf("create legacy status job: %w", err)
	}

	s.legacyJobID = job.JobID
	s.logger.Info().Str("job_id", job.JobID).Msg("legacy status job created")
	return nil
}

func (s *jobService) LegacyStatus(ctx context.Context) (models.JobStatus, error) {
	if s.legacyJobID == "" {
		return "", ErrInvalidJobID
	}
	return s.GetJobStatus(ctx, s.legacyJobID)
}

func (s *jobService) FinalizeDueJobs(ctx context.Context, limit int) (int, error) {
	now := time.Now()

	due, err := s.repo.ListDue(ctx, now, limit)
	if err != nil {
		return 0, fmt.Errorf("list due jobs: %w", err)
	}

	finalized := 0
	for _, job := range due {
		status := models.JobStatusCompleted
		reason := ""
		if s.randFloat() < job.ErrorRate {
			status = models.JobStatusError
			reason = failureReasons[rand.IntN(len(failureReasons))]
		}

		err := s.repo.Finalize(ctx, job.JobID, status, reason, now, job.Version)
		if err != nil {
			if errors.Is(err, store.ErrVersionConflict) || errors.Is(err, store.ErrJobNotPending) {
				// finalized concurrently; nothing to do
				continue
			}
			return finalized, fmt.Errorf("finalize job %s: %w", job.JobID, err)
		}
		finalized++

		job.Status = status
		job.FailureReason = reason
		job.FinishedAt = &now
		s.fanOut(ctx, job)
	}

	return finalized, nil
}

func (s *jobService) Subscribe(jobID string) (<-chan models.JobEvent, func()) {
	return s.hub.subscribe(jobID)
}

// fanOut delivers a terminal transition to the SSE hub, the status cache,
// and the broker. Failures downstream are logged and never roll back the
// already-committed transition.
func (s *jobService) fanOut(ctx context.Context, job models.TranslationJob) {
	event := models.NewJobEvent(job)

	s.hub.publish(event)

	if s.cache != nil {
		if err := s.cache.SetStatus(ctx, job); err != nil {
			s.logger.Warn().Err(err).Str("job_id", job.JobID).Msg("status cache write failed")
		}
		if err := s.cache.PublishEvent(ctx, event); err != nil {
			s.logger.Warn().Err(err).Str("job_id", job.JobID).Msg("redis event publish failed")
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn().Err(err).Str("job_id", job.JobID).Msg("broker event publish failed")
		}
	}

	s.logger.Info().
		Str("job_id", job.JobID).
		Str("status", string(job.Status)).
		Str("failure_reason", job.FailureReason).
		Msg("translation job finalized")
}

// pickDuration clamps the requested duration into the configured window.
// A zero request draws a random duration from the window instead.
func (s *jobService) pickDuration(requested time.Duration) time.Duration {
	if requested <= 0 {
		spread := s.cfg.MaxDuration - s.cfg.MinDuration
		if spread <= 0 {
			return s.cfg.MinDuration
		}
		return s.cfg.MinDuration + rand.N(spread)
	}

	if requested < s.cfg.MinDuration {
		return s.cfg.MinDuration
	}
	if requested > s.cfg.MaxDuration {
		return s.cfg.MaxDuration
	}
	return requested
}
