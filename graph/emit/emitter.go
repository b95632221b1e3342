package emit

// Emitter receives events from workflow runs.
//
// Implementations must be safe for concurrent use, must not block the
// run, and must not panic; backend failures are handled internally.
type Emitter interface {
	Emit(event Event)
}
