package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxlate/voxlate/models"
)

func TestStatusHub_PublishReachesAllSubscribers(t *testing.T) {
	hub := newStatusHub()

	first, cancelFirst := hub.subscribe("job-1")
	second, cancelSecond := hub.subscribe("job-1")
	defer cancelFirst()
	defer cancelSecond()

	event := models.JobEvent{Name: models.EventJobCompleted, JobID: "job-1", Status: models.JobStatusCompleted}
	hub.publish(event)

	for _, ch := range []<-chan models.JobEvent{first, second} {
		select {
		case got := <-ch:
			assert.Equal(t, event, got)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestStatusHub_PublishIsScopedToJob(t *testing.T) {
	hub := newStatusHub()

	other, cancel := hub.subscribe("job-2")
	defer cancel()

	hub.publish(models.JobEvent{Name: models.EventJobCompleted, JobID: "job-1"})

	select {
	case <-other:
		t.Fatal("subscriber of another job received the event")
	default:
	}
}

func TestStatusHub_CancelStopsDelivery(t *testing.T) {
	hub := newStatusHub()

	ch, cancel := hub.subscribe("job-1")
	cancel()

	// publish after cancel must not panic and must not deliver
	hub.publish(models.JobEvent{Name: models.EventJobCompleted, JobID: "job-1"})

	_, open := <-ch
	require.False(t, open, "cancelled subscriber channel should be closed")
}

func TestStatusHub_CancelIsIdempotent(t *testing.T) {
	hub := newStatusHub()

	_, cancel := hub.subscribe("job-1")
	cancel()
	assert.NotPanics(t, cancel)
}

func TestStatusHub_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	hub := newStatusHub()

	_, cancel := hub.subscribe("job-1")
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		// channel buffers one event; further publishes are dropped, not blocked
		for range 10 {
			hub.publish(models.JobEvent{Name: models.EventJobCompleted, JobID: "job-1"})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}
