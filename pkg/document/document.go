// Package document is the persistence boundary of the graph engine. A
// [Document] is the format-agnostic shape a graph serializes to: node
// descriptors (stable id, type name, canvas position, parameters) plus
// connection descriptors keyed by (node id, port name) pairs.
//
// The conversion is asymmetric on purpose. [FromGraph] is total: every graph
// produces a document. [Document.Build] is best-effort: node kinds unknown to
// the registry and connections that no longer validate are skipped and
// logged, never fatal, so one stale descriptor cannot hold the rest of a
// saved graph hostage.
package document

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/parametriclab/nodeflow/pkg/graph"
	"github.com/parametriclab/nodeflow/pkg/registry"
)

// Document is the serialized shape of a graph. Node order is the graph's
// insertion order; it round-trips because execution tie-breaks on it.
type Document struct {
	Nodes       []Node       `json:"nodes" bson:"nodes"`
	Connections []Connection `json:"connections" bson:"connections"`
}

// Node is one serialized node: identity, kind, canvas position, and the
// name→value parameter map captured by [graph.Node.Parameters].
type Node struct {
	ID         string         `json:"id" bson:"id"`
	TypeName   string         `json:"typeName" bson:"typeName"`
	X          float64        `json:"x,omitempty" bson:"x,omitempty"`
	Y          float64        `json:"y,omitempty" bson:"y,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty" bson:"parameters,omitempty"`
}

// Connection is one serialized wire, keyed by node ids and port names.
type Connection struct {
	SourceNodeID string `json:"sourceNodeId" bson:"sourceNodeId"`
	SourcePort   string `json:"sourcePort" bson:"sourcePort"`
	TargetNodeID string `json:"targetNodeId" bson:"targetNodeId"`
	TargetPort   string `json:"targetPort" bson:"targetPort"`
}

// FromGraph captures g as a document. Nodes appear in insertion order,
// connections in commit order, so output is deterministic for a given
// editing history.
func FromGraph(g *graph.Graph) Document {
	nodes := g.Nodes()
	conns := g.Connections()

	doc := Document{
		Nodes:       make([]Node, len(nodes)),
		Connections: make([]Connection, len(conns)),
	}
	for i, n := range nodes {
		x, y := n.Position()
		doc.Nodes[i] = Node{
			ID:         n.ID(),
			TypeName:   n.TypeName(),
			X:          x,
			Y:          y,
			Parameters: n.Parameters(),
		}
	}
	for i, c := range conns {
		doc.Connections[i] = Connection{
			SourceNodeID: c.SourceNodeID,
			SourcePort:   c.SourcePort,
			TargetNodeID: c.TargetNodeID,
			TargetPort:   c.TargetPort,
		}
	}
	return doc
}

// Build reconstructs a live graph, resolving each node's type name through
// reg. Descriptors that cannot be restored are skipped and logged at warn
// level: unknown type names, duplicate ids, and connections that fail
// validation against the rebuilt graph (missing endpoint, bad port, type
// mismatch, or a cycle in a hand-edited file). A nil logger falls back to
// [log.Default].
func (d Document) Build(reg *registry.Registry, logger *log.Logger) *graph.Graph {
	if logger == nil {
		logger = log.Default()
	}

	g := graph.New()
	for _, dn := range d.Nodes {
		r, ok := reg.Lookup(dn.TypeName)
		if !ok {
			logger.Warn("skipping node with unknown type", "id", dn.ID, "type", dn.TypeName)
			continue
		}
		n := r.New()
		n.SetID(dn.ID)
		n.SetPosition(dn.X, dn.Y)
		n.SetParameters(dn.Parameters)
		if err := g.AddNode(n); err != nil {
			logger.Warn("skipping node", "id", dn.ID, "err", err)
		}
	}
	for _, dc := range d.Connections {
		if _, err := g.Connect(dc.SourceNodeID, dc.SourcePort, dc.TargetNodeID, dc.TargetPort); err != nil {
			logger.Warn("skipping connection",
				"source", dc.SourceNodeID+"."+dc.SourcePort,
				"target", dc.TargetNodeID+"."+dc.TargetPort,
				"err", err)
		}
	}
	return g
}

// Read decodes a JSON document from r. It does not close r.
func Read(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	return d, nil
}

// Write encodes d as indented JSON to w. The output can be read back with
// [Read] for round-trip processing.
func Write(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadFile reads the JSON document at path.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// WriteFile writes d as JSON to a file at path.
func WriteFile(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(d, f)
}

// Marshal returns d as compact JSON. Stores use it for single-blob storage.
func Marshal(d Document) ([]byte, error) {
	return json.Marshal(d)
}

// Unmarshal decodes compact JSON produced by [Marshal].
func Unmarshal(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("unmarshal: %w", err)
	}
	return d, nil
}
