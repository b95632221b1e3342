package graph

import (
	"fmt"

	"github.com/google/uuid"
)

// Graph holds the node set and connection set and keeps the wiring
// invariants true as either changes:
//
//  1. an input port accepts at most one incoming connection; wiring an
//     already-connected input replaces the previous edge
//  2. connected ports must have compatible DataTypes
//  3. self-loops are rejected at the point of wiring
//  4. the connection set is always a subset of currently-valid port
//     pairs; removing a node or a port prunes its connections
//
// Graph is a single-actor structure: it is mutated between runs by one
// caller and read by the runner. It carries no locking of its own.
type Graph struct {
	nodes []*Node // insertion order, drives deterministic scheduling
	byID  map[string]*Node
	conns []*Connection
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{byID: make(map[string]*Node)}
}

// AddNode inserts a node. Node ids must be unique.
func (g *Graph) AddNode(n *Node) error {
	if n == nil || n.ID == "" {
		return fmt.Errorf("%w: empty id", ErrUnknownNode)
	}
	if _, exists := g.byID[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
	}
	g.nodes = append(g.nodes, n)
	g.byID[n.ID] = n
	return nil
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.byID[id]
	return n, ok
}

// Nodes returns the node set in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Connections returns the current connection set.
func (g *Graph) Connections() []*Connection {
	out := make([]*Connection, len(g.conns))
	copy(out, g.conns)
	return out
}

// RemoveNode deletes a node and cascades to every connection that
// references it. Removing an unknown id is a no-op.
func (g *Graph) RemoveNode(id string) {
	if _, ok := g.byID[id]; !ok {
		return
	}
	delete(g.byID, id)
	for i, n := range g.nodes {
		if n.ID == id {
			g.nodes = append(g.nodes[:i], g.nodes[i+1:]...)
			break
		}
	}
	g.prune()
}

// Connect wires an output port to an input port, validating the edge
// synchronously. Invalid connections are rejected without mutating the
// graph. A valid connection into an already-wired input port replaces
// the existing edge. Returns the created connection.
func (g *Graph) Connect(fromNodeID, fromPortID, toNodeID, toPortID string) (*Connection, error) {
	if fromNodeID == toNodeID {
		return nil, fmt.Errorf("%w: %s", ErrSelfLoop, fromNodeID)
	}
	from, ok := g.byID[fromNodeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, fromNodeID)
	}
	to, ok := g.byID[toNodeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, toNodeID)
	}
	fromPort, ok := from.OutputPort(fromPortID)
	if !ok {
		if _, isInput := from.InputPort(fromPortID); isInput {
			return nil, fmt.Errorf("%w: %s.%s is an input", ErrPortDirection, fromNodeID, fromPortID)
		}
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownPort, fromNodeID, fromPortID)
	}
	toPort, ok := to.InputPort(toPortID)
	if !ok {
		if _, isOutput := to.OutputPort(toPortID); isOutput {
			return nil, fmt.Errorf("%w: %s.%s is an output", ErrPortDirection, toNodeID, toPortID)
		}
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownPort, toNodeID, toPortID)
	}
	if !Compatible(fromPort.DataType, toPort.DataType) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIncompatibleTypes, fromPort.DataType, toPort.DataType)
	}

	conn := &Connection{
		ID:         "conn-" + uuid.NewString(),
		FromNodeID: fromNodeID,
		FromPortID: fromPortID,
		ToNodeID:   toNodeID,
		ToPortID:   toPortID,
	}

	// Single-inbound invariant: drop any edge already entering this
	// input port.
	kept := g.conns[:0]
	for _, c := range g.conns {
		if c.ToNodeID == toNodeID && c.ToPortID == toPortID {
			continue
		}
		kept = append(kept, c)
	}
	g.conns = append(kept, conn)
	return conn, nil
}

// Disconnect removes a connection by id. Reports whether it existed.
func (g *Graph) Disconnect(connID string) bool {
	for i, c := range g.conns {
		if c.ID == connID {
			g.conns = append(g.conns[:i], g.conns[i+1:]...)
			return true
		}
	}
	return false
}

// SetGeneratorMode switches an IMAGE_GENERATOR node to a new mode,
// replacing its entire input port list with the mode's canonical set.
// Connections into ports that no longer exist are pruned. This is the
// only sanctioned port mutation on a live node.
func (g *Graph) SetGeneratorMode(nodeID string, mode GeneratorMode) error {
	n, ok := g.byID[nodeID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, nodeID)
	}
	if n.Kind != KindImageGenerator {
		return fmt.Errorf("%w: %s is not a generator", ErrUnknownKind, nodeID)
	}
	inputs, err := GeneratorInputs(mode)
	if err != nil {
		return fmt.Errorf("unknown generator mode %q", mode)
	}
	n.Inputs = inputs
	n.ApplyPatch(map[string]any{"mode": string(mode)})
	g.prune()
	return nil
}

// SpliceNode inserts a node into the middle of an existing connection:
// the edge is replaced by upstream -> node and node -> downstream,
// using the spliced node's first ports compatible with each end. Fails
// without mutation when the node cannot sit on that edge.
func (g *Graph) SpliceNode(connID string, n *Node) error {
	var conn *Connection
	for _, c := range g.conns {
		if c.ID == connID {
			conn = c
			break
		}
	}
	if conn == nil {
		return fmt.Errorf("%w: connection %s", ErrUnknownNode, connID)
	}
	// Splicing an edge's own endpoint would create a self-loop; reject
	// before the original edge is touched.
	if n.ID == conn.FromNodeID || n.ID == conn.ToNodeID {
		return fmt.Errorf("%w: %s", ErrSelfLoop, n.ID)
	}
	from := g.byID[conn.FromNodeID]
	to := g.byID[conn.ToNodeID]
	fromPort, _ := from.OutputPort(conn.FromPortID)
	toPort, _ := to.InputPort(conn.ToPortID)

	var inID, outID string
	for _, p := range n.Inputs {
		if Compatible(fromPort.DataType, p.DataType) {
			inID = p.ID
			break
		}
	}
	for _, p := range n.Outputs {
		if Compatible(p.DataType, toPort.DataType) {
			outID = p.ID
			break
		}
	}
	if inID == "" || outID == "" {
		return fmt.Errorf("%w: node %s cannot splice %s -> %s", ErrIncompatibleTypes, n.ID, fromPort.DataType, toPort.DataType)
	}

	if _, ok := g.byID[n.ID]; !ok {
		if err := g.AddNode(n); err != nil {
			return err
		}
	}
	g.Disconnect(connID)
	if _, err := g.Connect(conn.FromNodeID, conn.FromPortID, n.ID, inID); err != nil {
		return err
	}
	_, err := g.Connect(n.ID, outID, conn.ToNodeID, conn.ToPortID)
	return err
}

// CompatibleKinds reports which node kinds could legally be created at
// the open end of a connection dragged from the given output port: the
// kinds whose default input list has at least one port compatible with
// the source port's DataType.
func (g *Graph) CompatibleKinds(fromNodeID, fromPortID string) ([]NodeKind, error) {
	from, ok := g.byID[fromNodeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, fromNodeID)
	}
	fromPort, ok := from.OutputPort(fromPortID)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownPort, fromNodeID, fromPortID)
	}

	var kinds []NodeKind
	for _, kind := range AllKinds() {
		proto, err := CreateNode(kind, Point{})
		if err != nil {
			continue
		}
		for _, p := range proto.Inputs {
			if Compatible(fromPort.DataType, p.DataType) {
				kinds = append(kinds, kind)
				break
			}
		}
	}
	return kinds, nil
}

// AllKinds lists every registered node kind in a stable order.
func AllKinds() []NodeKind {
	return []NodeKind{
		KindImageLoader, KindPrompt, KindPromptStyler, KindImageGenerator,
		KindImageStitcher, KindImageDescriber, KindSolidColor, KindCropImage,
		KindPadding, KindPose, KindSketch, KindAnnotation, KindPreview,
	}
}

// prune drops every connection referencing a (nodeID, portID) pair that
// no longer exists. Called after any node or port removal.
func (g *Graph) prune() {
	kept := g.conns[:0]
	for _, c := range g.conns {
		from, ok := g.byID[c.FromNodeID]
		if !ok {
			continue
		}
		to, ok := g.byID[c.ToNodeID]
		if !ok {
			continue
		}
		if _, ok := from.OutputPort(c.FromPortID); !ok {
			continue
		}
		if _, ok := to.InputPort(c.ToPortID); !ok {
			continue
		}
		kept = append(kept, c)
	}
	g.conns = kept
}
