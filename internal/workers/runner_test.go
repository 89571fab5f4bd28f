package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/models"
)

// spyJobService counts FinalizeDueJobs calls; the other JobService methods
// are not exercised by the runner.
type spyJobService struct {
	calls     atomic.Int64
	lastLimit atomic.Int64
}

func (s *spyJobService) FinalizeDueJobs(_ context.Context, limit int) (int, error) {
	s.calls.Add(1)
	s.lastLimit.Store(int64(limit))
	return 0, nil
}

func (s *spyJobService) CreateJob(context.Context, models.CreateJobRequest) (models.TranslationJob, error) {
	return models.TranslationJob{}, nil
}

func (s *spyJobService) GetJob(context.Context, string) (models.TranslationJob, error) {
	return models.TranslationJob{}, nil
}

func (s *spyJobService) GetJobStatus(context.Context, string) (models.JobStatus, error) {
	return models.JobStatusPending, nil
}

func (s *spyJobService) EnsureLegacyJob(context.Context) error { return nil }

func (s *spyJobService) LegacyStatus(context.Context) (models.JobStatus, error) {
	return models.JobStatusPending, nil
}

func (s *spyJobService) Subscribe(string) (<-chan models.JobEvent, func()) {
	return nil, func() {}
}

func TestJobRunner_FinalizesOnTicks(t *testing.T) {
	spy := &spyJobService{}
	runner := newJobRunner(spy, config.Workers{
		RunnerInterval: 5 * time.Millisecond,
		BatchSize:      16,
	}, logger.Nop())

	runner.Run()
	defer runner.Stop()

	require.Eventually(t, func() bool {
		return spy.calls.Load() >= 3
	}, time.Second, time.Millisecond, "runner did not tick")

	assert.Equal(t, int64(16), spy.lastLimit.Load())
}

func TestJobRunner_StopHaltsTicks(t *testing.T) {
	spy := &spyJobService{}
	runner := newJobRunner(spy, config.Workers{
		RunnerInterval: time.Millisecond,
		BatchSize:      1,
	}, logger.Nop())

	runner.Run()
	require.Eventually(t, func() bool {
		return spy.calls.Load() >= 1
	}, time.Second, time.Millisecond)

	runner.Stop()
	after := spy.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, spy.calls.Load(), "runner kept ticking after Stop")
}

func TestJobRunner_StopWithoutRun(t *testing.T) {
	runner := newJobRunner(&spyJobService{}, config.Workers{
		RunnerInterval: time.Millisecond,
		BatchSize:      1,
	}, logger.Nop())

	assert.NotPanics(t, runner.Stop)
}

func TestJobRunner_RunRestarts(t *testing.T) {
	spy := &spyJobService{}
	runner := newJobRunner(spy, config.Workers{
		RunnerInterval: time.Millisecond,
		BatchSize:      1,
	}, logger.Nop())

	runner.Run()
	runner.Run() // restart must stop the first goroutine, not leak it
	defer runner.Stop()

	require.Eventually(t, func() bool {
		return spy.calls.Load() >= 1
	}, time.Second, time.Millisecond)
}
