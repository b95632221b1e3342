package graph

import (
	"fmt"
	"sort"
	"strings"
)

// CycleError reports that the connection set contains at least one
// cycle. Order holds the valid prefix (every node outside the cycles,
// in execution order); Excluded names the nodes that could never reach
// in-degree zero and would otherwise have been silently skipped.
type CycleError struct {
	Order    []string
	Excluded []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected: nodes [%s] are unreachable in topological order",
		strings.Join(e.Excluded, ", "))
}

// ExecutionOrder computes a topological order over the node set using
// Kahn's algorithm: in-degrees are derived from the connection set, the
// queue is seeded with every zero-in-degree node, and ready nodes are
// dequeued FIFO. Ties between simultaneously-ready nodes are broken by
// node insertion order, so the result is deterministic for a fixed
// node slice.
//
// A cyclic connection set leaves the cycle's members with positive
// in-degree forever. Rather than silently dropping them, the partial
// order is returned together with a *CycleError naming the excluded
// nodes; callers that want the historical skip-and-continue behavior
// can use the returned order and ignore the error.
func ExecutionOrder(nodes []*Node, conns []*Connection) ([]*Node, error) {
	inDegree := make(map[string]int, len(nodes))
	successors := make(map[string][]string, len(nodes))
	byID := make(map[string]*Node, len(nodes))
	for _, n := range nodes {
		inDegree[n.ID] = 0
		byID[n.ID] = n
	}
	for _, c := range conns {
		if _, ok := byID[c.FromNodeID]; !ok {
			continue
		}
		if _, ok := byID[c.ToNodeID]; !ok {
			continue
		}
		inDegree[c.ToNodeID]++
		successors[c.FromNodeID] = append(successors[c.FromNodeID], c.ToNodeID)
	}

	queue := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n)
		}
	}

	order := make([]*Node, 0, len(nodes))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, succID := range successors[n.ID] {
			inDegree[succID]--
			if inDegree[succID] == 0 {
				queue = append(queue, byID[succID])
			}
		}
	}

	if len(order) < len(nodes) {
		ordered := make(map[string]bool, len(order))
		orderIDs := make([]string, 0, len(order))
		for _, n := range order {
			ordered[n.ID] = true
			orderIDs = append(orderIDs, n.ID)
		}
		var excluded []string
		for _, n := range nodes {
			if !ordered[n.ID] {
				excluded = append(excluded, n.ID)
			}
		}
		sort.Strings(excluded)
		return order, &CycleError{Order: orderIDs, Excluded: excluded}
	}
	return order, nil
}
