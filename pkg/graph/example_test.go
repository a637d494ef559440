package graph_test

import (
	"errors"
	"fmt"

	"github.com/parametriclab/nodeflow/pkg/graph"
)

// numberSource builds a node with a single Number output that always
// produces n.
func numberSource(id string, n float64) *graph.Node {
	out := graph.NewOutput("result", "Result", graph.TypeNumber)
	node := graph.NewNode("math/number", graph.ComputeFunc(func(*graph.Node) error {
		out.SetValue(graph.Number(n))
		return nil
	}), nil, []*graph.Port{out})
	node.SetID(id)
	return node
}

// adder builds a node that sums its two Number inputs.
func adder(id string) *graph.Node {
	a := graph.NewInput("a", "A", graph.TypeNumber).Default(graph.Number(0))
	b := graph.NewInput("b", "B", graph.TypeNumber).Default(graph.Number(0))
	sum := graph.NewOutput("sum", "Sum", graph.TypeNumber)
	node := graph.NewNode("math/add", graph.ComputeFunc(func(*graph.Node) error {
		sum.SetValue(graph.Number(a.EffectiveValue().AsNumber() + b.EffectiveValue().AsNumber()))
		return nil
	}), []*graph.Port{a, b}, []*graph.Port{sum})
	node.SetID(id)
	return node
}

func ExampleGraph_Execute() {
	g := graph.New()
	g.AddNode(numberSource("two", 2))
	g.AddNode(numberSource("three", 3))
	g.AddNode(adder("sum"))
	g.Connect("two", "result", "sum", "a")
	g.Connect("three", "result", "sum", "b")

	ok := g.Execute(nil)

	n, _ := g.Node("sum")
	out, _ := n.Output("sum")
	fmt.Println(ok, out.EffectiveValue())
	// Output: true 5
}

func ExampleGraph_Connect() {
	g := graph.New()
	g.AddNode(numberSource("n", 1))
	g.AddNode(adder("sum"))

	// Wiring an output into an output is rejected; so is a cycle.
	_, err := g.Connect("n", "result", "sum", "sum")
	fmt.Println(errors.Is(err, graph.ErrPortDirection))

	_, err = g.Connect("sum", "sum", "sum", "a")
	fmt.Println(errors.Is(err, graph.ErrSelfConnection))

	_, err = g.Connect("n", "result", "sum", "a")
	fmt.Println(err)
	// Output:
	// true
	// true
	// <nil>
}

func ExampleGraph_TopologicalSort() {
	g := graph.New()
	// Insert in reverse so the order is forced by the wiring alone.
	g.AddNode(adder("c"))
	g.AddNode(adder("b"))
	g.AddNode(numberSource("a", 1))
	g.Connect("a", "result", "b", "a")
	g.Connect("b", "sum", "c", "a")

	sorted, err := g.TopologicalSort()
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, n := range sorted {
		fmt.Println(n.ID())
	}
	// Output:
	// a
	// b
	// c
}
