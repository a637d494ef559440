package graph

import "slices"

// TopologicalSort returns every node in dependency order: for each
// connection, the source node precedes the target node in the result.
//
// The order is computed with Kahn's algorithm: each node's in-degree is
// counted from the connection targets, all zero-in-degree nodes seed the
// ready set, and nodes are emitted one at a time while decrementing their
// successors' in-degrees. Among simultaneously ready nodes the tie-break is
// the order in which nodes were added to the graph, an explicit and
// documented policy, since it fixes the order of any side effects
// independent branches perform during execution. The result is therefore
// deterministic for a given construction sequence.
//
// If the graph contains a cycle no order exists: TopologicalSort returns
// ErrCyclic and a nil slice, never a partial order.
func (g *Graph) TopologicalSort() ([]*Node, error) {
	index := make(map[string]int, len(g.order))
	indegree := make(map[string]int, len(g.order))
	for i, n := range g.order {
		index[n.id] = i
		indegree[n.id] = 0
	}

	outgoing := make(map[string][]string, len(g.nodes))
	for _, c := range g.conns {
		indegree[c.TargetNodeID]++
		outgoing[c.SourceNodeID] = append(outgoing[c.SourceNodeID], c.TargetNodeID)
	}

	byInsertion := func(a, b *Node) int { return index[a.id] - index[b.id] }

	var ready []*Node
	for _, n := range g.order {
		if indegree[n.id] == 0 {
			ready = append(ready, n)
		}
	}

	sorted := make([]*Node, 0, len(g.order))
	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		sorted = append(sorted, n)

		for _, targetID := range outgoing[n.id] {
			indegree[targetID]--
			if indegree[targetID] == 0 {
				t := g.nodes[targetID]
				at, _ := slices.BinarySearchFunc(ready, t, byInsertion)
				ready = slices.Insert(ready, at, t)
			}
		}
	}

	if len(sorted) != len(g.order) {
		return nil, ErrCyclic
	}
	return sorted, nil
}
