package graph

// Connection is a directed edge from one node's output port to another
// node's input port. Connections are created through Graph.Connect,
// which enforces the wiring invariants; a Connection value that exists
// in a Graph is therefore always between currently-valid, compatible
// ports.
type Connection struct {
	ID         string `json:"id"`
	FromNodeID string `json:"fromNodeId"`
	FromPortID string `json:"fromPortId"`
	ToNodeID   string `json:"toNodeId"`
	ToPortID   string `json:"toPortId"`
}
