// Package graph provides a typed node-graph dataflow engine: computation
// units ("nodes") with named, typed terminals ("ports"), connected by
// directed wires, validated for structural soundness, ordered by dependency,
// and executed deterministically.
//
// # Overview
//
// A [Graph] owns a set of [Node] values and the [Connection] wires between
// them. Nodes are created by a type registry (see the registry package),
// added to a graph, optionally parameterized, and wired together with
// [Graph.Connect]. The graph enforces its structural invariants on every
// mutation: ports must exist and have the right direction, connected types
// must be compatible, an input accepts at most one incoming wire (the newest
// silently supersedes the old), and the wire set must stay acyclic.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [Graph.AddNode], and wire them
// with [Graph.Connect]:
//
//	g := graph.New()
//	g.AddNode(a) // a Node with a Number output "value"
//	g.AddNode(b) // a Node with Number inputs "a", "b"
//	if _, err := g.Connect(a.ID(), "value", b.ID(), "a"); err != nil {
//		// structurally invalid request; the graph is unchanged
//	}
//
// [Graph.Validate] returns the full list of problems a run would hit
// (required inputs without a value or wire, plus a single entry if the graph
// is cyclic) without executing anything.
//
// # Execution Model
//
// [Graph.Execute] computes a topological order with [Graph.TopologicalSort]
// (Kahn's algorithm, ties broken by node insertion order) and runs every node
// once, in order. Each [Node.Execute] first pulls the current value of every
// connected input from its live source output port and resets unconnected
// inputs to their defaults, then invokes the node's [Computer]. A failing or
// panicking Compute is downgraded to that node's error state; the run
// continues with the remaining nodes and the aggregate success flag is
// returned. A cyclic graph yields no order: Execute reports failure without
// invoking any node.
//
// The caller may pass an opaque environment into Execute. It is attached to
// each node for the duration of exactly one run and readable from Compute via
// [Node.Env]; the engine itself never inspects it.
//
// # Values
//
// Port values are a tagged union, [Value], over the port data types
// ([DataType]): scalars, 3D points, lists, and opaque handles for the
// modeling reference kinds. The As* accessors are fail-soft and return a
// documented fallback on kind mismatch; the strict accessors return an error
// so node kinds can surface a genuine mismatch as a node-local failure.
//
// # Notifications
//
// A [Listener] observes the graph: structural changes, per-node execution,
// run completion, and node removal (with the removed ids, so external owners
// of node-keyed resources can release them). [NopListener] is an embeddable
// no-op base.
//
// # Concurrency
//
// Graph instances are not safe for concurrent use, and Execute must not be
// re-entered on the same graph while a run is in progress. The engine is
// driven synchronously by one caller (originally a UI event loop); callers
// that receive overlapping execution requests must serialize or coalesce
// them. There is no cancellation mid-run: either the pre-flight sort fails
// and nothing executes, or every node in the order runs to completion.
//
// # Related Packages
//
// The registry package maps stable type names to node constructors. The
// document package converts a Graph to and from its serialized shape. The
// nodes package ships the built-in node kinds.
package graph
