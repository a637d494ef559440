package graph

// Listener receives graph lifecycle notifications. Install one with
// [Graph.SetListener]; the editing surface uses it to schedule redraws and
// recomputation, and owners of node-keyed external resources use it to
// release them on removal.
//
// Notifications are delivered synchronously on the mutating goroutine, so
// implementations must be fast and must not mutate the graph re-entrantly.
type Listener interface {
	// GraphChanged is called after every structural mutation: a node added
	// or removed, a connection made, superseded, or removed.
	GraphChanged(g *Graph)

	// NodeExecuting is called by [Graph.Execute] once per node per run, in
	// execution order, immediately before the node runs.
	NodeExecuting(n *Node)

	// ExecutionCompleted is called by [Graph.Execute] once per run with the
	// aggregate success flag: true only if no node reported an error. It is
	// also called, with false, when a cyclic graph prevents any node from
	// running.
	ExecutionCompleted(success bool)

	// NodesRemoved is called with the ids of removed nodes, once per
	// removal operation (a bulk removal yields one call carrying all ids).
	// It fires before the accompanying GraphChanged.
	NodesRemoved(ids []string)
}

// NopListener is a [Listener] that ignores every notification. Embed it to
// implement only the notifications you care about.
type NopListener struct{}

// GraphChanged implements [Listener].
func (NopListener) GraphChanged(*Graph) {}

// NodeExecuting implements [Listener].
func (NopListener) NodeExecuting(*Node) {}

// ExecutionCompleted implements [Listener].
func (NopListener) ExecutionCompleted(bool) {}

// NodesRemoved implements [Listener].
func (NopListener) NodesRemoved([]string) {}

var _ Listener = NopListener{}
