package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tmaxmax/go-sse"

	"github.com/voxlate/voxlate/internal/logger"
	"github.com/voxlate/voxlate/models"
)

// eventTypeStatus is the SSE event carrying the job status snapshot sent
// right after the stream is established. Terminal transitions are delivered
// with the lifecycle event name ("job.completed" / "job.errored").
const eventTypeStatus = "status"

// streamJobEvents serves GET /api/jobs/{jobID}/events. It upgrades the
// connection to Server-Sent Events, emits the current status immediately and
// then a single lifecycle event once the job reaches a terminal state.
// Clients watching an already finished job receive both events back to back.
func (h *Handler) streamJobEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	jobID := chi.URLParam(r, "jobID")

	// subscribe before the snapshot so a transition between the two is not lost
	events, cancel := h.services.JobService.Subscribe(jobID)
	defer cancel()

	job, err := h.services.JobService.GetJob(ctx, jobID)
	if err != nil {
		log.Err(err).Msg("job lookup failed")
		writeError(w, err)
		return
	}

	sess, err := sse.Upgrade(w, r)
	if err != nil {
		log.Err(err).Msg("sse upgrade failed")
		http.Error(w, "streaming is not supported", http.StatusInternalServerError)
		return
	}

	if err := sendSSE(sess, eventTypeStatus, models.StatusResponse{Result: job.Status}); err != nil {
		log.Err(err).Msg("sse status snapshot write failed")
		return
	}

	if job.Status.Terminal() {
		event := models.NewJobEvent(job)
		if err := sendSSE(sess, event.Name, event); err != nil {
			log.Err(err).Msg("sse terminal event write failed")
		}
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-events:
			if err := sendSSE(sess, event.Name, event); err != nil {
				log.Err(err).Msg("sse event write failed")
				return
			}
			if event.Status.Terminal() {
				return
			}
		}
	}
}

// sendSSE marshals payload to JSON and writes it as a flushed SSE message of
// the given event type.
func sendSSE(sess *sse.Session, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := sse.Message{Type: sse.Type(eventType)}
	msg.AppendData(string(data))

	if err := sess.Send(&msg); err != nil {
		return err
	}
	return sess.Flush()
}
