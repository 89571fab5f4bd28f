package service

import (
	"sync"

	"github.com/voxlate/voxlate/models"
)

// statusHub fans terminal job transitions out to in-process subscribers
// (the SSE transport). Subscriber channels are buffered; a subscriber that
// is not draining loses the event rather than blocking the runner.
type statusHub struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]chan models.JobEvent
}

func newStatusHub() *statusHub {
	return &statusHub{
		subs: make(map[string]map[int]chan models.JobEvent),
	}
}

func (h *statusHub) subscribe(jobID string) (<-chan models.JobEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++

	ch := make(chan models.JobEvent, 1)
	if h.subs[jobID] == nil {
		h.subs[jobID] = make(map[int]chan models.JobEvent)
	}
	h.subs[jobID][id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		if listeners, ok := h.subs[jobID]; ok {
			if _, ok := listeners[id]; ok {
				delete(listeners, id)
				close(ch)
			}
			if len(listeners) == 0 {
				delete(h.subs, jobID)
			}
		}
	}

	return ch, cancel
}

func (h *statusHub) publish(event models.JobEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs[event.JobID] {
		select {
		case ch <- event:
		default:
		}
	}
}
