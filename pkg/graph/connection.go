package graph

import "fmt"

// Connection is an immutable directed wire from one node's output port to
// another node's input port. Connections refer to their endpoints by node id
// and port name, never by object reference, so they stay valid across
// serialization and cannot form ownership cycles with the nodes they join.
//
// Connections are created exclusively by [Graph.Connect], which enforces the
// structural invariants: the source must be an output, the target an input,
// source and target nodes must differ, types must be compatible, and at most
// one connection terminates at any input.
type Connection struct {
	SourceNodeID string
	SourcePort   string
	TargetNodeID string
	TargetPort   string
}

// DataType returns the type currently flowing through the connection and
// true, or false if either endpoint no longer resolves. The type is looked
// up live from the source output port on every call, never cached, so it
// reflects present state even for node kinds whose output types change
// dynamically.
func (c Connection) DataType(g *Graph) (DataType, bool) {
	src, ok := g.Node(c.SourceNodeID)
	if !ok {
		return TypeAny, false
	}
	out, ok := src.Output(c.SourcePort)
	if !ok {
		return TypeAny, false
	}
	return out.Type(), true
}

// String formats the connection as "src.port -> dst.port" for logs and
// exports.
func (c Connection) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s", c.SourceNodeID, c.SourcePort, c.TargetNodeID, c.TargetPort)
}
