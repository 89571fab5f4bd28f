package client_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxlate/voxlate/client"
	"github.com/voxlate/voxlate/internal/config"
	handlerhttp "github.com/voxlate/voxlate/internal/handler/http"
	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/internal/service"
	"github.com/voxlate/voxlate/internal/store"
	"github.com/voxlate/voxlate/internal/workers"
	"github.com/voxlate/voxlate/models"
)

// startTestServer boots the real server stack (in-memory store, services,
// job runner, chi router) the way cmd/server does, just on a test listener.
func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.StructuredConfig{
		App: config.App{Version: "integration-test"},
		Jobs: config.Jobs{
			MinDuration: 50 * time.Millisecond,
			MaxDuration: 200 * time.Millisecond,
			ErrorRate:   0.1,
		},
		Workers: config.Workers{
			RunnerInterval: 10 * time.Millisecond,
			BatchSize:      16,
		},
	}

	log := logger.Nop()
	storages := &store.Storages{Jobs: store.NewMemoryJobRepository()}
	services := service.NewServices(storages, nil, cfg, log)

	require.NoError(t, services.JobService.EnsureLegacyJob(t.Context()))

	w := workers.NewWorkers(services, cfg.Workers, log)
	w.Run()
	t.Cleanup(w.Stop)

	srv := httptest.NewServer(handlerhttp.NewHandler(services, log).Init())
	t.Cleanup(srv.Close)

	return srv
}

func newIntegrationClient(srv *httptest.Server) *client.Client {
	return client.New(
		client.WithBaseURL(srv.URL),
		client.WithInitialPollInterval(10*time.Millisecond),
		client.WithMaxPollInterval(50*time.Millisecond),
	)
}

func TestIntegration_AsynchronousStatusCheck(t *testing.T) {
	srv := startTestServer(t)
	c := newIntegrationClient(srv)

	results := make(chan client.Result, 1)
	c.CheckStatusAsync(t.Context(), func(res client.Result) {
		results <- res
	})

	// the caller keeps working here without waiting for the status update

	select {
	case res := <-results:
		require.NoError(t, res.Err)
		assert.Contains(t, []models.JobStatus{models.JobStatusCompleted, models.JobStatusError}, res.Status)
	case <-time.After(10 * time.Second):
		t.Fatal("status callback was never invoked")
	}
}

func TestIntegration_JobLifecycle(t *testing.T) {
	srv := startTestServer(t)
	c := newIntegrationClient(srv)

	rate := 0.0
	job, err := c.CreateJob(t.Context(), models.CreateJobRequest{
		SourceLanguage: "en",
		TargetLanguage: "de",
		ErrorRate:      &rate,
	})
	require.NoError(t, err)
	require.NotEmpty(t, job.JobID)
	assert.Equal(t, models.JobStatusPending, job.Status)

	status, err := c.WaitForJob(t.Context(), job.JobID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, status)

	// a finished job keeps reporting its terminal status
	again, err := c.JobStatus(t.Context(), job.JobID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, again)
}

func TestIntegration_WatchJobStreamsTerminalEvent(t *testing.T) {
	srv := startTestServer(t)
	c := newIntegrationClient(srv)

	rate := 1.0
	job, err := c.CreateJob(t.Context(), models.CreateJobRequest{ErrorRate: &rate})
	require.NoError(t, err)

	var events []models.JobEvent
	status, err := c.WatchJob(t.Context(), job.JobID, func(event models.JobEvent) {
		events = append(events, event)
	})
	require.NoError(t, err)

	assert.Equal(t, models.JobStatusError, status)
	require.Len(t, events, 1)
	assert.Equal(t, models.EventJobErrored, events[0].Name)
	assert.NotEmpty(t, events[0].FailureReason)
}
