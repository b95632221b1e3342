package emit

import "sync"

// BufferedEmitter stores events in memory, organized by run, for tests
// and post-run inspection. Everything stays in memory until cleared, so
// long-lived processes should Clear finished runs.
type BufferedEmitter struct {
	mu     sync.RWMutex
	events map[string][]Event
}

// Filter selects a subset of a run's events. Zero fields match
// everything; set fields combine with AND.
type Filter struct {
	NodeID string
	Msg    string
}

// NewBufferedEmitter creates an empty buffer.
func NewBufferedEmitter() *BufferedEmitter {
	return &BufferedEmitter{events: make(map[string][]Event)}
}

// Emit appends the event to its run's buffer.
func (b *BufferedEmitter) Emit(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[event.RunID] = append(b.events[event.RunID], event)
}

// Events returns a run's events in emission order.
func (b *BufferedEmitter) Events(runID string) []Event {
	return b.EventsWithFilter(runID, Filter{})
}

// EventsWithFilter returns the run's events matching the filter, in
// emission order. The result is a copy.
func (b *BufferedEmitter) EventsWithFilter(runID string, filter Filter) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := []Event{}
	for _, event := range b.events[runID] {
		if filter.NodeID != "" && event.NodeID != filter.NodeID {
			continue
		}
		if filter.Msg != "" && event.Msg != filter.Msg {
			continue
		}
		result = append(result, event)
	}
	return result
}

// Clear drops the named run's events, or every run's when runID is
// empty.
func (b *BufferedEmitter) Clear(runID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if runID == "" {
		b.events = make(map[string][]Event)
		return
	}
	delete(b.events, runID)
}
