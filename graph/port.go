// Package graph implements the workflow graph model and its execution
// engine: typed ports, nodes, connections, topological scheduling,
// per-kind executors with result caching, and fail-fast run control.
package graph

// DataType tags a port with the kind of payload it carries. Ports may
// only be connected when their DataTypes are compatible.
type DataType string

const (
	// DataTypeImage carries an encoded raster image payload.
	DataTypeImage DataType = "image"

	// DataTypeText carries plain text.
	DataTypeText DataType = "text"

	// DataTypeAny matches every other DataType. Used by ports that
	// accept or produce either payload shape (e.g. generator results,
	// preview inputs).
	DataTypeAny DataType = "any"
)

// Compatible reports whether two DataTypes may be wired together.
// It is symmetric and total: equal types match, and DataTypeAny
// matches everything.
func Compatible(a, b DataType) bool {
	return a == b || a == DataTypeAny || b == DataTypeAny
}

// Direction distinguishes input ports from output ports.
type Direction string

const (
	// DirectionInput marks a port that receives a value.
	DirectionInput Direction = "input"

	// DirectionOutput marks a port that produces a value.
	DirectionOutput Direction = "output"
)

// Port is a typed connection endpoint on a node. Port identity is the
// (nodeID, portID) pair; IDs are unique within a node. Ports are
// immutable for the duration of a run; the only sanctioned mutation is
// the generator's mode change, which replaces its entire input list via
// Graph.SetGeneratorMode.
type Port struct {
	ID        string    `json:"id"`
	Direction Direction `json:"direction"`
	DataType  DataType  `json:"dataType"`
	Label     string    `json:"label,omitempty"`
}
