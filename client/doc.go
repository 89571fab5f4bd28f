// Package client is the public Go client for the voxlate translation
// status API.
//
// The zero-configuration entry point mirrors how the service is deployed by
// default: a server on localhost:5000 with a single translation job whose
// status is exposed on GET /status. Callers that need more than the legacy
// endpoint can create jobs, poll their status, or subscribe to the event
// stream of a specific job.
//
// Polling is handled inside the client so callers never talk to the status
// endpoints in a tight loop: intervals start at one second and double after
// every "pending" response, capped at thirty seconds, with jitter to avoid
// thundering herds. By default the client polls until the job reaches a
// terminal state or the context is cancelled.
//
//	c := client.New()
//	status, err := c.WaitForCompletion(ctx)
//
// or, without blocking the caller:
//
//	c.CheckStatusAsync(ctx, func(res client.Result) {
//	    log.Printf("job finished: %s", res.Status)
//	})
package client
