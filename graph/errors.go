package graph

import "errors"

// ErrRunInProgress indicates that Run was invoked while another run on
// the same Runner had not finished. Runs are never re-entrant; the new
// invocation is suppressed.
var ErrRunInProgress = errors.New("a run is already in progress")

// ErrUnknownKind indicates a node kind with no factory registration.
var ErrUnknownKind = errors.New("unknown node kind")

// ErrUnknownNode indicates a node id not present in the graph.
var ErrUnknownNode = errors.New("unknown node")

// ErrUnknownPort indicates a port id not present on the referenced node.
var ErrUnknownPort = errors.New("unknown port")

// ErrDuplicateNode indicates an AddNode with an id already in use.
var ErrDuplicateNode = errors.New("duplicate node id")

// ErrSelfLoop indicates an attempted connection from a node to itself.
var ErrSelfLoop = errors.New("connection would form a self-loop")

// ErrPortDirection indicates a connection that does not run from an
// output port to an input port.
var ErrPortDirection = errors.New("connection must run from an output port to an input port")

// ErrIncompatibleTypes indicates a connection between ports whose
// DataTypes do not match and neither side is "any".
var ErrIncompatibleTypes = errors.New("incompatible port data types")

// ErrMissingInput indicates a node reached execution without a required
// upstream value.
var ErrMissingInput = errors.New("missing input")

// ErrBadPayload indicates an input that claims to be an image or text
// payload but cannot be decoded.
var ErrBadPayload = errors.New("malformed payload")

// NodeError records an execution failure on a specific node. The
// message is what the failing node displays; for external capability
// failures it carries the service's message verbatim.
type NodeError struct {
	NodeID  string
	Kind    NodeKind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	if e.NodeID != "" {
		return "node " + e.NodeID + ": " + e.Message
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *NodeError) Unwrap() error {
	return e.Cause
}
