package nodes

import (
	"fmt"
	"math"

	"github.com/parametriclab/nodeflow/pkg/graph"
)

// newRange produces count numbers starting at start, step apart. A negative
// or fractional count is truncated toward zero.
func newRange() *graph.Node {
	return graph.NewNode("lists/range",
		graph.ComputeFunc(func(n *graph.Node) error {
			start, err := numberInput(n, "start")
			if err != nil {
				return err
			}
			count, err := numberInput(n, "count")
			if err != nil {
				return err
			}
			step, err := numberInput(n, "step")
			if err != nil {
				return err
			}
			size := int(count)
			if size < 0 {
				size = 0
			}
			items := make([]graph.Value, size)
			for i := range items {
				items[i] = graph.Number(start + float64(i)*step)
			}
			return setOutput(n, "list", graph.List(items...))
		}),
		[]*graph.Port{
			graph.NewInput("start", "Start", graph.TypeNumber).Default(graph.Number(0)),
			graph.NewInput("count", "Count", graph.TypeNumber).Default(graph.Number(10)),
			graph.NewInput("step", "Step", graph.TypeNumber).Default(graph.Number(1)),
		},
		[]*graph.Port{
			graph.NewOutput("list", "List", graph.TypeList),
		},
	)
}

func newLength() *graph.Node {
	return graph.NewNode("lists/length",
		graph.ComputeFunc(func(n *graph.Node) error {
			in, ok := n.Input("list")
			if !ok {
				return fmt.Errorf("no input named %q", "list")
			}
			items, err := in.EffectiveValue().List()
			if err != nil {
				return fmt.Errorf("input %q: %w", "list", err)
			}
			return setOutput(n, "length", graph.Number(float64(len(items))))
		}),
		[]*graph.Port{
			graph.NewInput("list", "List", graph.TypeList),
		},
		[]*graph.Port{
			graph.NewOutput("length", "Length", graph.TypeNumber),
		},
	)
}

// newItem picks one element out of a list. The item output is Any: the
// element keeps whatever kind it has in the list.
func newItem() *graph.Node {
	return graph.NewNode("lists/item",
		graph.ComputeFunc(func(n *graph.Node) error {
			in, ok := n.Input("list")
			if !ok {
				return fmt.Errorf("no input named %q", "list")
			}
			items, err := in.EffectiveValue().List()
			if err != nil {
				return fmt.Errorf("input %q: %w", "list", err)
			}
			idx, err := numberInput(n, "index")
			if err != nil {
				return err
			}
			i := int(math.Trunc(idx))
			if i < 0 || i >= len(items) {
				return fmt.Errorf("index %d out of range for %d items", i, len(items))
			}
			return setOutput(n, "item", items[i])
		}),
		[]*graph.Port{
			graph.NewInput("list", "List", graph.TypeList),
			graph.NewInput("index", "Index", graph.TypeNumber).Default(graph.Number(0)),
		},
		[]*graph.Port{
			graph.NewOutput("item", "Item", graph.TypeAny),
		},
	)
}
