package workers

import (
	"context"
	"sync"
	"time"

	"github.com/voxlate/voxlate/internal/config"
	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/internal/service"
)

// jobRunner periodically finalizes translation jobs whose simulated
// processing time has elapsed. It is the only writer of terminal statuses,
// so a short tick keeps the status endpoints close to real time.
type jobRunner struct {
	jobs service.JobService

	interval  time.Duration
	batchSize int
	logger    *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newJobRunner(jobs service.JobService, cfg config.Workers, log *logger.Logger) *jobRunner {
	return &jobRunner{
		jobs:      jobs,
		interval:  cfg.RunnerInterval,
		batchSize: cfg.BatchSize,
		logger:    log,
	}
}

// Run implements Worker. It stops any previously running instance, then
// launches a background goroutine that finalizes due jobs every interval.
// The goroutine exits when Stop is called.
func (r *jobRunner) Run() {
	r.Stop()

	r.mu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.wg.Add(1)
	r.mu.Unlock()

	r.logger.Info().
		Dur("interval", r.interval).
		Int("batch_size", r.batchSize).
		Msg("job runner started")

	go func() {
		defer r.wg.Done()
		t := time.NewTicker(r.interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				n, err := r.jobs.FinalizeDueJobs(ctx, r.batchSize)
				if err != nil {
					r.logger.Error().Err(err).Msg("finalizing due jobs failed")
					continue
				}
				if n > 0 {
					r.logger.Debug().Int("finalized", n).Msg("due jobs finalized")
				}
			}
		}
	}()
}

// Stop implements Worker. It cancels the runner goroutine and blocks until it
// has fully exited. Safe to call when the runner is not running.
func (r *jobRunner) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	r.wg.Wait()
}
