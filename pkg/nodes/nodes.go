// Package nodes provides the built-in node kinds: numeric math, 3D points,
// and list plumbing. [Register] installs them onto a registry; nothing here
// registers itself globally.
//
// Built-in computations read inputs through the strict [graph.Value]
// accessors, so a kind mismatch on an Any-typed wire surfaces as a node error
// instead of silently computing with zeros.
package nodes

import (
	"fmt"

	"github.com/parametriclab/nodeflow/pkg/graph"
	"github.com/parametriclab/nodeflow/pkg/registry"
)

// Register installs every built-in node kind onto r.
func Register(r *registry.Registry) error {
	for _, reg := range builtins() {
		if err := r.Register(reg); err != nil {
			return err
		}
	}
	return nil
}

// DefaultRegistry returns a fresh registry with every built-in kind
// installed. Installing the built-ins into an empty registry cannot fail, so
// a failure here means the kind table itself is broken and panics.
func DefaultRegistry() *registry.Registry {
	r := registry.New()
	if err := Register(r); err != nil {
		panic(err)
	}
	return r
}

func builtins() []registry.Registration {
	return []registry.Registration{
		{TypeName: "math/number", DisplayName: "Number", Category: "Math", New: newNumber},
		{TypeName: "math/add", DisplayName: "Add", Category: "Math", New: newAdd},
		{TypeName: "math/subtract", DisplayName: "Subtract", Category: "Math", New: newSubtract},
		{TypeName: "math/multiply", DisplayName: "Multiply", Category: "Math", New: newMultiply},
		{TypeName: "math/divide", DisplayName: "Divide", Category: "Math", New: newDivide},
		{TypeName: "geometry/point", DisplayName: "Point", Category: "Geometry", New: newPoint},
		{TypeName: "geometry/point-components", DisplayName: "Point Components", Category: "Geometry", New: newPointComponents},
		{TypeName: "lists/range", DisplayName: "Range", Category: "Lists", New: newRange},
		{TypeName: "lists/length", DisplayName: "Length", Category: "Lists", New: newLength},
		{TypeName: "lists/item", DisplayName: "Item", Category: "Lists", New: newItem},
	}
}

// numberInput reads the named input's effective value as a scalar, wrapping
// kind mismatches with the port name for the node's error message.
func numberInput(n *graph.Node, name string) (float64, error) {
	in, ok := n.Input(name)
	if !ok {
		return 0, fmt.Errorf("no input named %q", name)
	}
	v, err := in.EffectiveValue().Number()
	if err != nil {
		return 0, fmt.Errorf("input %q: %w", name, err)
	}
	return v, nil
}

// setOutput writes the named output port.
func setOutput(n *graph.Node, name string, v graph.Value) error {
	out, ok := n.Output(name)
	if !ok {
		return fmt.Errorf("no output named %q", name)
	}
	out.SetValue(v)
	return nil
}
