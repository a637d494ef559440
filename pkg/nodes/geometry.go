package nodes

import (
	"fmt"

	"github.com/parametriclab/nodeflow/pkg/graph"
)

// newPoint assembles a Point3D from three scalar inputs.
func newPoint() *graph.Node {
	return graph.NewNode("geometry/point",
		graph.ComputeFunc(func(n *graph.Node) error {
			x, err := numberInput(n, "x")
			if err != nil {
				return err
			}
			y, err := numberInput(n, "y")
			if err != nil {
				return err
			}
			z, err := numberInput(n, "z")
			if err != nil {
				return err
			}
			return setOutput(n, "point", graph.Point(x, y, z))
		}),
		[]*graph.Port{
			graph.NewInput("x", "X", graph.TypeNumber).Default(graph.Number(0)),
			graph.NewInput("y", "Y", graph.TypeNumber).Default(graph.Number(0)),
			graph.NewInput("z", "Z", graph.TypeNumber).Default(graph.Number(0)),
		},
		[]*graph.Port{
			graph.NewOutput("point", "Point", graph.TypePoint3D),
		},
	)
}

// newPointComponents splits a Point3D into its three coordinates. The point
// input has no default, so an unwired instance is reported by graph
// validation and fails at run time with a kind error.
func newPointComponents() *graph.Node {
	return graph.NewNode("geometry/point-components",
		graph.ComputeFunc(func(n *graph.Node) error {
			in, ok := n.Input("point")
			if !ok {
				return fmt.Errorf("no input named %q", "point")
			}
			p, err := in.EffectiveValue().Point()
			if err != nil {
				return fmt.Errorf("input %q: %w", "point", err)
			}
			if err := setOutput(n, "x", graph.Number(p.X)); err != nil {
				return err
			}
			if err := setOutput(n, "y", graph.Number(p.Y)); err != nil {
				return err
			}
			return setOutput(n, "z", graph.Number(p.Z))
		}),
		[]*graph.Port{
			graph.NewInput("point", "Point", graph.TypePoint3D),
		},
		[]*graph.Port{
			graph.NewOutput("x", "X", graph.TypeNumber),
			graph.NewOutput("y", "Y", graph.TypeNumber),
			graph.NewOutput("z", "Z", graph.TypeNumber),
		},
	)
}
