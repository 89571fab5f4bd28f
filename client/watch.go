package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tmaxmax/go-sse"

	"github.com/voxlate/voxlate/models"
)

// WatchJob subscribes to the server-sent event stream of a job and blocks
// until the job reaches a terminal state, the stream ends, or ctx is
// cancelled. Every received lifecycle event is passed to onEvent (which may
// be nil); the terminal status is returned.
//
// Unlike the wait helpers, WatchJob holds a single connection open instead
// of polling, so status transitions arrive as they happen.
func (c *Client) WatchJob(ctx context.Context, jobID string, onEvent func(models.JobEvent)) (models.JobStatus, error) {
	resp, err := c.authorized().
		SetContext(ctx).
		SetHeader("Accept", "text/event-stream").
		SetDoNotParseResponse(true).
		Get("/api/jobs/" + jobID + "/events")
	if err != nil {
		return "", fmt.Errorf("events request: %w", err)
	}

	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != 200 {
		return "", &APIError{StatusCode: resp.StatusCode()}
	}

	var last models.JobStatus
	for ev, err := range sse.Read(body, nil) {
		if err != nil {
			return "", fmt.Errorf("read event stream: %w", err)
		}

		switch ev.Type {
		case models.EventJobCompleted, models.EventJobErrored:
			var event models.JobEvent
			if err := json.Unmarshal([]byte(ev.Data), &event); err != nil {
				return "", fmt.Errorf("decode job event: %w", err)
			}
			if onEvent != nil {
				onEvent(event)
			}
			last = event.Status
			if last.Terminal() {
				return last, nil
			}
		default:
			// the initial "status" snapshot and unknown event types carry no
			// transition, keep reading
		}
	}

	if last == "" {
		return "", fmt.Errorf("event stream ended before a terminal status")
	}
	return last, nil
}
