package nodes

import (
	"strings"
	"testing"

	"github.com/parametriclab/nodeflow/pkg/graph"
)

func TestPoint(t *testing.T) {
	r := setup(t)
	g := graph.New()
	n := create(t, r, "geometry/point")
	if err := g.AddNode(n); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	setLiteral(t, n, "x", graph.Number(1))
	setLiteral(t, n, "y", graph.Number(2))
	setLiteral(t, n, "z", graph.Number(3))

	if !g.Execute(nil) {
		t.Fatalf("Execute = false: %s", n.ErrorMessage())
	}
	if got := output(t, n, "point").AsPoint(); got != (graph.Point3D{X: 1, Y: 2, Z: 3}) {
		t.Errorf("point = %v, want (1, 2, 3)", got)
	}
}

func TestPointComponents(t *testing.T) {
	r := setup(t)
	g := graph.New()
	pt := create(t, r, "geometry/point")
	split := create(t, r, "geometry/point-components")
	for _, n := range []*graph.Node{pt, split} {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
	}
	setLiteral(t, pt, "x", graph.Number(4))
	setLiteral(t, pt, "y", graph.Number(5))
	setLiteral(t, pt, "z", graph.Number(6))
	if _, err := g.Connect(pt.ID(), "point", split.ID(), "point"); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if !g.Execute(nil) {
		t.Fatalf("Execute = false: %s", split.ErrorMessage())
	}
	for name, want := range map[string]float64{"x": 4, "y": 5, "z": 6} {
		if got := output(t, split, name).AsNumber(); got != want {
			t.Errorf("%s = %g, want %g", name, got, want)
		}
	}
}

func TestPointComponentsUnwired(t *testing.T) {
	r := setup(t)
	g := graph.New()
	n := create(t, r, "geometry/point-components")
	if err := g.AddNode(n); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	// The missing required input shows up in validation and, if executed
	// anyway, as a node-local kind error.
	problems := g.Validate()
	if len(problems) != 1 || problems[0].Port != "point" {
		t.Fatalf("Validate = %v, want one problem on port point", problems)
	}
	if g.Execute(nil) {
		t.Fatal("Execute = true, want false")
	}
	if !strings.Contains(n.ErrorMessage(), "point") {
		t.Errorf("error = %q, want it to name the input", n.ErrorMessage())
	}
}
