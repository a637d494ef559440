package graph

import (
	"fmt"
)

// Computer is the capability a node kind implements to perform its
// computation. Compute reads the node's input ports, writes its output
// ports, and may consult the opaque run environment via [Node.Env]. A
// returned error (or a panic) is downgraded by [Node.Execute] into the
// node's error state; it never aborts the surrounding run.
type Computer interface {
	Compute(n *Node) error
}

// ComputeFunc adapts an ordinary function to the [Computer] interface.
type ComputeFunc func(n *Node) error

// Compute calls f(n).
func (f ComputeFunc) Compute(n *Node) error { return f(n) }

var _ Computer = ComputeFunc(nil)

// Parameterizer is an optional interface a [Computer] may implement to widen
// or replace the node's default parameter set. Without it, a node's
// parameters are the current values of its input ports.
type Parameterizer interface {
	// Parameters returns the node's serializable state as a name→value map.
	Parameters(n *Node) map[string]any
	// SetParameters restores state captured by Parameters. Implementations
	// must be best-effort: unknown names and inconvertible values are
	// ignored, never fatal.
	SetParameters(n *Node, params map[string]any)
}

// Node is a unit of computation owning an ordered, fixed set of typed input
// and output ports. Nodes are identified by a stable id that survives
// save/load, belong to exactly one [Graph], and carry transient run state
// (error flag, message, executed flag) that [Graph.Execute] resets before
// every run.
//
// Create nodes through a registry so the type name matches a registered
// constructor; [NewNode] is the underlying building block node kinds use.
type Node struct {
	id       string
	typeName string
	x, y     float64
	inputs   []*Port
	outputs  []*Port
	computer Computer

	hasError    bool
	errMessage  string
	wasExecuted bool
	env         any
}

// NewNode creates a node of the given type with its full port set. The port
// slices are taken over by the node and must not be modified afterwards; a
// node's port set never changes shape during its lifetime. The node has no
// id until [Node.SetID] assigns one.
func NewNode(typeName string, c Computer, inputs, outputs []*Port) *Node {
	return &Node{
		typeName: typeName,
		computer: c,
		inputs:   inputs,
		outputs:  outputs,
	}
}

// ID returns the node's stable identifier.
func (n *Node) ID() string { return n.id }

// SetID assigns the node's stable identifier. It must be called exactly once,
// before the node is added to a graph: the registry assigns a fresh uuid on
// interactive creation, and the deserializer restores the persisted id.
func (n *Node) SetID(id string) { n.id = id }

// TypeName returns the registry key identifying the node's kind.
func (n *Node) TypeName() string { return n.typeName }

// Position returns the node's canvas coordinates. The engine never renders;
// positions are carried for the editing surface and preserved across
// save/load.
func (n *Node) Position() (x, y float64) { return n.x, n.y }

// SetPosition moves the node on the canvas.
func (n *Node) SetPosition(x, y float64) { n.x, n.y = x, y }

// Inputs returns the node's input ports in declaration order.
// The returned slice is a read-only view; do not modify it.
func (n *Node) Inputs() []*Port { return n.inputs }

// Outputs returns the node's output ports in declaration order.
// The returned slice is a read-only view; do not modify it.
func (n *Node) Outputs() []*Port { return n.outputs }

// Input returns the input port with the given name and true, or nil and
// false if no such input exists.
func (n *Node) Input(name string) (*Port, bool) {
	for _, p := range n.inputs {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// Output returns the output port with the given name and true, or nil and
// false if no such output exists.
func (n *Node) Output(name string) (*Port, bool) {
	for _, p := range n.outputs {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// HasError reports whether the most recent execution of this node failed.
func (n *Node) HasError() bool { return n.hasError }

// ErrorMessage returns the failure message of the most recent execution, or
// the empty string.
func (n *Node) ErrorMessage() string { return n.errMessage }

// WasExecuted reports whether the node has run since the last
// [Node.ResetExecution].
func (n *Node) WasExecuted() bool { return n.wasExecuted }

// Env returns the opaque run environment attached for the duration of the
// current run, or nil outside a run. The engine never inspects it; node
// kinds assert it to whatever capability interface they require.
func (n *Node) Env() any { return n.env }

// Execute is the sole externally invoked entry point of a node. It resets
// the error state, marks the node executed, pulls every connected input's
// current value from its live source output port, resets every unconnected
// input to its default (so a removed wire never leaves a stale value
// behind), and finally invokes the node's [Computer]. Errors and panics
// inside Compute are converted into the node's error state; they are never
// propagated, so one bad node cannot abort a run.
func (n *Node) Execute(g *Graph) {
	n.hasError = false
	n.errMessage = ""
	n.wasExecuted = true

	for _, in := range n.inputs {
		c, ok := g.IncomingConnection(n.id, in.name)
		if !ok {
			in.ResetToDefault()
			continue
		}
		src, ok := g.Node(c.SourceNodeID)
		if !ok {
			in.ResetToDefault()
			continue
		}
		out, ok := src.Output(c.SourcePort)
		if !ok {
			in.ResetToDefault()
			continue
		}
		in.SetValue(out.EffectiveValue())
	}

	n.compute()
}

// compute invokes the Computer with panic isolation.
func (n *Node) compute() {
	defer func() {
		if r := recover(); r != nil {
			n.fail(fmt.Sprintf("panic: %v", r))
		}
	}()
	if n.computer == nil {
		return
	}
	if err := n.computer.Compute(n); err != nil {
		n.fail(err.Error())
	}
}

func (n *Node) fail(msg string) {
	n.hasError = true
	n.errMessage = msg
}

// ResetExecution clears the node's transient run state between independent
// runs.
func (n *Node) ResetExecution() {
	n.wasExecuted = false
	n.hasError = false
	n.errMessage = ""
}

// Parameters returns the node's serializable state as a name→value map. By
// default that is the effective value of every input port, converted to the
// JSON-friendly representation of [Value.Interface]; ports without a
// convertible value (unset, or reference-kinded) are omitted. A [Computer]
// implementing [Parameterizer] overrides the default.
func (n *Node) Parameters() map[string]any {
	if p, ok := n.computer.(Parameterizer); ok {
		return p.Parameters(n)
	}
	params := make(map[string]any)
	for _, in := range n.inputs {
		if raw := in.EffectiveValue().Interface(); raw != nil {
			params[in.name] = raw
		}
	}
	return params
}

// SetParameters restores state captured by [Node.Parameters], coercing each
// incoming value into the declared type of the named input port and storing
// it as the port's default, where it survives the per-run input reset. The
// operation is best-effort: names that match no input and values that cannot
// be coerced are skipped, never fatal. A [Computer] implementing
// [Parameterizer] overrides the default.
func (n *Node) SetParameters(params map[string]any) {
	if p, ok := n.computer.(Parameterizer); ok {
		p.SetParameters(n, params)
		return
	}
	for name, raw := range params {
		in, ok := n.Input(name)
		if !ok {
			continue
		}
		if v := Coerce(in.dataType, raw); !v.IsNil() {
			in.SetDefault(v)
		}
	}
}
