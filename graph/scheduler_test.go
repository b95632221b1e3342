package graph

import (
	"errors"
	"testing"
)

// plainNode builds a minimal node with one any-typed port in each
// direction, enough for scheduler wiring without factory defaults.
func plainNode(id string) *Node {
	return &Node{
		ID:   id,
		Kind: KindPreview,
		Inputs: []Port{
			{ID: "in", Direction: DirectionInput, DataType: DataTypeAny},
		},
		Outputs: []Port{
			{ID: "out", Direction: DirectionOutput, DataType: DataTypeAny},
		},
		Data: map[string]any{},
	}
}

func edge(from, to string) *Connection {
	return &Connection{
		ID:         "conn-" + from + "-" + to,
		FromNodeID: from,
		FromPortID: "out",
		ToNodeID:   to,
		ToPortID:   "in",
	}
}

func orderIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func TestExecutionOrder(t *testing.T) {
	t.Run("chain", func(t *testing.T) {
		nodes := []*Node{plainNode("a"), plainNode("b"), plainNode("c")}
		conns := []*Connection{edge("a", "b"), edge("b", "c")}

		order, err := ExecutionOrder(nodes, conns)
		if err != nil {
			t.Fatalf("ExecutionOrder failed: %v", err)
		}
		got := orderIDs(order)
		want := []string{"a", "b", "c"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("order = %v, want %v", got, want)
			}
		}
	})

	t.Run("every edge respected", func(t *testing.T) {
		nodes := []*Node{plainNode("d"), plainNode("b"), plainNode("a"), plainNode("c")}
		conns := []*Connection{edge("a", "b"), edge("a", "c"), edge("b", "d"), edge("c", "d")}

		order, err := ExecutionOrder(nodes, conns)
		if err != nil {
			t.Fatalf("ExecutionOrder failed: %v", err)
		}
		ids := orderIDs(order)
		for _, c := range conns {
			if indexOf(ids, c.FromNodeID) >= indexOf(ids, c.ToNodeID) {
				t.Errorf("edge %s -> %s violated in %v", c.FromNodeID, c.ToNodeID, ids)
			}
		}
	})

	t.Run("ties broken by insertion order", func(t *testing.T) {
		nodes := []*Node{plainNode("z"), plainNode("a"), plainNode("m")}

		for i := 0; i < 5; i++ {
			order, err := ExecutionOrder(nodes, nil)
			if err != nil {
				t.Fatalf("ExecutionOrder failed: %v", err)
			}
			got := orderIDs(order)
			want := []string{"z", "a", "m"}
			for j := range want {
				if got[j] != want[j] {
					t.Fatalf("run %d order = %v, want insertion order %v", i, got, want)
				}
			}
		}
	})

	t.Run("cycle excluded loudly", func(t *testing.T) {
		nodes := []*Node{plainNode("a"), plainNode("b"), plainNode("c"), plainNode("d")}
		// a -> b, then c <-> d forms a cycle.
		conns := []*Connection{edge("a", "b"), edge("c", "d"), edge("d", "c")}

		order, err := ExecutionOrder(nodes, conns)
		var cycleErr *CycleError
		if !errors.As(err, &cycleErr) {
			t.Fatalf("error = %v, want *CycleError", err)
		}

		got := orderIDs(order)
		if len(got) != 2 || got[0] != "a" || got[1] != "b" {
			t.Errorf("partial order = %v, want [a b]", got)
		}
		if len(cycleErr.Excluded) != 2 || cycleErr.Excluded[0] != "c" || cycleErr.Excluded[1] != "d" {
			t.Errorf("excluded = %v, want [c d]", cycleErr.Excluded)
		}
	})

	t.Run("dangling connection ignored", func(t *testing.T) {
		nodes := []*Node{plainNode("a")}
		conns := []*Connection{edge("ghost", "a")}

		order, err := ExecutionOrder(nodes, conns)
		if err != nil {
			t.Fatalf("ExecutionOrder failed: %v", err)
		}
		if len(order) != 1 {
			t.Errorf("order = %v, want [a]", orderIDs(order))
		}
	})
}
