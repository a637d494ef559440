package graph

import (
	"errors"
	"slices"
)

var (
	// ErrNilNode is returned by [Graph.AddNode] when the node is nil.
	ErrNilNode = errors.New("node must not be nil")

	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node has an
	// empty id. Assign one with [Node.SetID] (or create nodes through a
	// registry, which does it for you) before adding.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same id already exists in the graph. Node ids must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrNodeNotFound is returned by [Graph.Connect] and [Graph.RemoveNode]
	// when a referenced node id does not exist in the graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrPortNotFound is returned by [Graph.Connect] when a named port does
	// not exist on the referenced node in either direction.
	ErrPortNotFound = errors.New("port not found")

	// ErrPortDirection is returned by [Graph.Connect] when the named port
	// exists but has the wrong direction: the source must be an output and
	// the target an input.
	ErrPortDirection = errors.New("port has wrong direction")

	// ErrSelfConnection is returned by [Graph.Connect] when source and
	// target are the same node.
	ErrSelfConnection = errors.New("cannot connect a node to itself")

	// ErrTypeMismatch is returned by [Graph.Connect] when the port types are
	// incompatible. Types must match exactly unless either side is
	// [TypeAny].
	ErrTypeMismatch = errors.New("incompatible port types")

	// ErrWouldCycle is returned by [Graph.Connect] when committing the edge
	// would close a directed loop. The graph is left unchanged.
	ErrWouldCycle = errors.New("connection would create a cycle")

	// ErrCyclic is returned by [Graph.TopologicalSort] when the graph
	// contains a cycle and no order exists.
	ErrCyclic = errors.New("graph contains a cycle")
)

// portRef addresses one input port for the at-most-one-incoming index.
type portRef struct {
	node string
	port string
}

// Graph owns a set of nodes and the connections between them. No node or
// connection exists independent of a graph; removing a node cascades over
// every connection touching it. Nodes live in an insertion-ordered arena
// keyed by stable id; the insertion order is the documented tie-break of
// [Graph.TopologicalSort] and the iteration order of [Graph.Nodes].
//
// Every successful mutation preserves the structural invariants described in
// the package documentation; rejected mutations are strict no-ops. Graph is
// not safe for concurrent use.
type Graph struct {
	order    []*Node
	nodes    map[string]*Node
	conns    []Connection
	incoming map[portRef]Connection
	listener Listener
}

// New creates an empty graph with a no-op listener.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		incoming: make(map[portRef]Connection),
		listener: NopListener{},
	}
}

// SetListener installs the notification listener. Passing nil restores the
// no-op listener.
func (g *Graph) SetListener(l Listener) {
	if l == nil {
		l = NopListener{}
	}
	g.listener = l
}

// AddNode adds a node to the graph. Returns ErrNilNode, ErrInvalidNodeID or
// ErrDuplicateNodeID for unusable nodes. The graph takes ownership: the node
// is destroyed (dropped from the arena) when removed.
func (g *Graph) AddNode(n *Node) error {
	if n == nil {
		return ErrNilNode
	}
	if n.id == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.id]; exists {
		return ErrDuplicateNodeID
	}
	g.nodes[n.id] = n
	g.order = append(g.order, n)
	g.listener.GraphChanged(g)
	return nil
}

// Node returns the node with the given id and true, or nil and false if not
// found.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The returned slice is a copy;
// the node pointers refer to the live nodes.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.order) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.order) }

// Connections returns a copy of all connections in insertion order.
func (g *Graph) Connections() []Connection { return slices.Clone(g.conns) }

// ConnectionCount returns the number of connections in the graph.
func (g *Graph) ConnectionCount() int { return len(g.conns) }

// IncomingConnection returns the single connection terminating at the named
// input and true, or false if the input is unconnected.
func (g *Graph) IncomingConnection(nodeID, port string) (Connection, bool) {
	c, ok := g.incoming[portRef{node: nodeID, port: port}]
	return c, ok
}

// OutgoingConnections returns the connections originating at the node, in
// insertion order. Returns nil if the node has none.
func (g *Graph) OutgoingConnections(nodeID string) []Connection {
	var out []Connection
	for _, c := range g.conns {
		if c.SourceNodeID == nodeID {
			out = append(out, c)
		}
	}
	return out
}

// Connect wires the named output of the source node to the named input of
// the target node and returns the created connection.
//
// The request is validated before anything is committed: both nodes and
// ports must exist (ErrNodeNotFound, ErrPortNotFound), the ports must have
// the right directions (ErrPortDirection), the nodes must differ
// (ErrSelfConnection), the types must be compatible (ErrTypeMismatch), and
// the edge must not close a directed loop (ErrWouldCycle). A rejected
// request leaves the graph untouched.
//
// On success, any existing connection into the target input is removed
// first (an input accepts at most one incoming wire, and the newest
// silently supersedes the old), and then the edge is committed.
//
// The cycle test is a depth-first reachability search from the proposed
// target toward the proposed source over the existing wires. It is a fast
// pre-filter for interactive feedback; [Graph.TopologicalSort] remains the
// authoritative cycle detector for committed state.
func (g *Graph) Connect(srcID, srcPort, dstID, dstPort string) (Connection, error) {
	src, ok := g.nodes[srcID]
	if !ok {
		return Connection{}, ErrNodeNotFound
	}
	dst, ok := g.nodes[dstID]
	if !ok {
		return Connection{}, ErrNodeNotFound
	}
	out, ok := src.Output(srcPort)
	if !ok {
		if _, isInput := src.Input(srcPort); isInput {
			return Connection{}, ErrPortDirection
		}
		return Connection{}, ErrPortNotFound
	}
	in, ok := dst.Input(dstPort)
	if !ok {
		if _, isOutput := dst.Output(dstPort); isOutput {
			return Connection{}, ErrPortDirection
		}
		return Connection{}, ErrPortNotFound
	}
	if srcID == dstID {
		return Connection{}, ErrSelfConnection
	}
	if !Compatible(out.Type(), in.Type()) {
		return Connection{}, ErrTypeMismatch
	}
	if g.reachable(dstID, srcID) {
		return Connection{}, ErrWouldCycle
	}

	g.removeIncoming(dstID, dstPort)

	c := Connection{
		SourceNodeID: srcID,
		SourcePort:   srcPort,
		TargetNodeID: dstID,
		TargetPort:   dstPort,
	}
	g.conns = append(g.conns, c)
	g.incoming[portRef{node: dstID, port: dstPort}] = c
	g.listener.GraphChanged(g)
	return c, nil
}

// Disconnect removes the connection terminating at the named input, if any,
// and reports whether one was removed.
func (g *Graph) Disconnect(nodeID, port string) bool {
	if _, ok := g.incoming[portRef{node: nodeID, port: port}]; !ok {
		return false
	}
	g.removeIncoming(nodeID, port)
	g.listener.GraphChanged(g)
	return true
}

// removeIncoming drops the connection into the named input without firing
// notifications; callers fire them once per user-visible mutation.
func (g *Graph) removeIncoming(nodeID, port string) {
	ref := portRef{node: nodeID, port: port}
	if _, ok := g.incoming[ref]; !ok {
		return
	}
	delete(g.incoming, ref)
	g.conns = slices.DeleteFunc(g.conns, func(c Connection) bool {
		return c.TargetNodeID == nodeID && c.TargetPort == port
	})
}

// RemoveNode removes the node and cascades over every connection where it is
// source or target. Fires a nodes-removed notification with the node's id so
// external owners of node-keyed resources can release them. Returns
// ErrNodeNotFound if the id does not exist.
func (g *Graph) RemoveNode(id string) error {
	if _, ok := g.nodes[id]; !ok {
		return ErrNodeNotFound
	}
	g.remove(id)
	g.listener.NodesRemoved([]string{id})
	g.listener.GraphChanged(g)
	return nil
}

// RemoveNodes removes every listed node that exists, cascading like
// [Graph.RemoveNode], and returns the ids actually removed. This is the bulk
// form used to clear a selection: it fires a single nodes-removed
// notification carrying all removed ids.
func (g *Graph) RemoveNodes(ids ...string) []string {
	var removed []string
	for _, id := range ids {
		if _, ok := g.nodes[id]; !ok {
			continue
		}
		g.remove(id)
		removed = append(removed, id)
	}
	if len(removed) == 0 {
		return nil
	}
	g.listener.NodesRemoved(removed)
	g.listener.GraphChanged(g)
	return removed
}

func (g *Graph) remove(id string) {
	delete(g.nodes, id)
	g.order = slices.DeleteFunc(g.order, func(n *Node) bool { return n.id == id })
	g.conns = slices.DeleteFunc(g.conns, func(c Connection) bool {
		return c.SourceNodeID == id || c.TargetNodeID == id
	})
	for ref, c := range g.incoming {
		if ref.node == id || c.SourceNodeID == id {
			delete(g.incoming, ref)
		}
	}
}

// reachable reports whether target can be reached from start by following
// existing connections forward.
func (g *Graph) reachable(start, target string) bool {
	if start == target {
		return true
	}
	outgoing := make(map[string][]string, len(g.nodes))
	for _, c := range g.conns {
		outgoing[c.SourceNodeID] = append(outgoing[c.SourceNodeID], c.TargetNodeID)
	}

	visited := map[string]bool{start: true}
	stack := []string{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range outgoing[id] {
			if next == target {
				return true
			}
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}
