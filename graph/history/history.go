// Package history collects the results a workflow run produces, in
// order, so the surrounding application can show a run timeline. The
// runner records an entry whenever a node yields a displayable result;
// sinks suppress empty and consecutive-duplicate entries so cached
// re-runs do not flood the timeline.
package history

import (
	"sync"
	"time"
)

// Entry is one recorded result.
type Entry struct {
	NodeID   string    `json:"nodeId"`
	Kind     string    `json:"kind"`
	ImageURL string    `json:"imageUrl,omitempty"`
	Text     string    `json:"text,omitempty"`
	At       time.Time `json:"at"`
}

// Sink receives entries from the runner. Implementations must be safe
// for concurrent use and must not block the run.
type Sink interface {
	Record(entry Entry)
}

// MemHistory is an in-memory Sink. It drops entries with no payload and
// entries whose payload equals the previously recorded one.
type MemHistory struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemHistory creates an empty history.
func NewMemHistory() *MemHistory {
	return &MemHistory{}
}

// Record appends the entry unless it is empty or repeats the last one.
func (h *MemHistory) Record(entry Entry) {
	if entry.ImageURL == "" && entry.Text == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if n := len(h.entries); n > 0 {
		last := h.entries[n-1]
		if last.ImageURL == entry.ImageURL && last.Text == entry.Text {
			return
		}
	}
	h.entries = append(h.entries, entry)
}

// Entries returns a copy of the recorded entries in order.
func (h *MemHistory) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Clear discards all recorded entries.
func (h *MemHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}
