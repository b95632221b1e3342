// Package emit carries observability events out of workflow runs.
// The runner emits a structured Event at each lifecycle point; an
// Emitter routes them to a log, a trace backend, or an in-memory
// buffer. Events are the engine's log; there is no separate logger.
package emit

// Event messages the runner emits.
const (
	MsgRunStart  = "run_start"
	MsgNodeStart = "node_start"
	MsgNodeEnd   = "node_end"
	MsgNodeError = "node_error"
	MsgCacheHit  = "cache_hit"
	MsgRunEnd    = "run_end"
)

// Event is one observability record from a workflow run.
type Event struct {
	// RunID identifies the run that emitted this event.
	RunID string

	// Step is the 1-indexed position of the node in the execution
	// order. Zero for run-level events.
	Step int

	// NodeID identifies the node, empty for run-level events.
	NodeID string

	// Kind is the node's kind string, empty for run-level events.
	Kind string

	// Msg names the lifecycle point (one of the Msg constants).
	Msg string

	// Meta holds additional structured data. Common keys:
	//   "duration_ms"  node execution duration
	//   "error"        error message for node_error
	//   "from_cache"   whether the result was memoized
	//   "nodes"        node count for run-level events
	Meta map[string]any
}
