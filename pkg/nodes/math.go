package nodes

import (
	"errors"

	"github.com/parametriclab/nodeflow/pkg/graph"
)

// newNumber builds the literal scalar source. Its value lives on the "value"
// input port, so it round-trips through the node parameter contract like any
// other input.
func newNumber() *graph.Node {
	return graph.NewNode("math/number",
		graph.ComputeFunc(func(n *graph.Node) error {
			v, err := numberInput(n, "value")
			if err != nil {
				return err
			}
			return setOutput(n, "result", graph.Number(v))
		}),
		[]*graph.Port{
			graph.NewInput("value", "Value", graph.TypeNumber).Default(graph.Number(0)),
		},
		[]*graph.Port{
			graph.NewOutput("result", "Result", graph.TypeNumber),
		},
	)
}

// binaryMath builds an a-op-b node. The op reports its own domain errors,
// which become the node's error state.
func binaryMath(typeName string, op func(a, b float64) (float64, error)) *graph.Node {
	return graph.NewNode(typeName,
		graph.ComputeFunc(func(n *graph.Node) error {
			a, err := numberInput(n, "a")
			if err != nil {
				return err
			}
			b, err := numberInput(n, "b")
			if err != nil {
				return err
			}
			r, err := op(a, b)
			if err != nil {
				return err
			}
			return setOutput(n, "result", graph.Number(r))
		}),
		[]*graph.Port{
			graph.NewInput("a", "A", graph.TypeNumber).Default(graph.Number(0)),
			graph.NewInput("b", "B", graph.TypeNumber).Default(graph.Number(0)),
		},
		[]*graph.Port{
			graph.NewOutput("result", "Result", graph.TypeNumber),
		},
	)
}

func newAdd() *graph.Node {
	return binaryMath("math/add", func(a, b float64) (float64, error) {
		return a + b, nil
	})
}

func newSubtract() *graph.Node {
	return binaryMath("math/subtract", func(a, b float64) (float64, error) {
		return a - b, nil
	})
}

func newMultiply() *graph.Node {
	return binaryMath("math/multiply", func(a, b float64) (float64, error) {
		return a * b, nil
	})
}

func newDivide() *graph.Node {
	return binaryMath("math/divide", func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, errors.New("division by zero")
		}
		return a / b, nil
	})
}
