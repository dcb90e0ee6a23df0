package events

import (
	"context"
	"sync"
)

// Recorder is an in-process Publisher that keeps every event, for tests and local runs.
type Recorder struct {
	mu     sync.Mutex
	events []*Event
}

func (r *Recorder) Publish(_ context.Context, e *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
	return nil
}

// Types lists the types of the recorded events in publish order.
func (r *Recorder) Types() []Type {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Type, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}

	return out
}

func (r *Recorder) Events() []*Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]*Event(nil), r.events...)
}
