package nodes

import (
	"strings"
	"testing"

	"github.com/parametriclab/nodeflow/pkg/graph"
)

func TestBinaryMath(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		a, b     float64
		want     float64
		wantErr  string
	}{
		{name: "Add", typeName: "math/add", a: 5, b: 3, want: 8},
		{name: "Subtract", typeName: "math/subtract", a: 5, b: 3, want: 2},
		{name: "Multiply", typeName: "math/multiply", a: 5, b: 3, want: 15},
		{name: "Divide", typeName: "math/divide", a: 6, b: 3, want: 2},
		{name: "DivideByZero", typeName: "math/divide", a: 6, b: 0, wantErr: "division by zero"},
	}
	r := setup(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.New()
			n := create(t, r, tt.typeName)
			if err := g.AddNode(n); err != nil {
				t.Fatalf("AddNode: %v", err)
			}
			setLiteral(t, n, "a", graph.Number(tt.a))
			setLiteral(t, n, "b", graph.Number(tt.b))

			ok := g.Execute(nil)

			if tt.wantErr != "" {
				if ok {
					t.Fatal("Execute = true, want false")
				}
				if !strings.Contains(n.ErrorMessage(), tt.wantErr) {
					t.Fatalf("error = %q, want it to contain %q", n.ErrorMessage(), tt.wantErr)
				}
				return
			}
			if !ok {
				t.Fatalf("Execute = false: %s", n.ErrorMessage())
			}
			if got := output(t, n, "result").AsNumber(); got != tt.want {
				t.Errorf("result = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestBinaryMathDefaults(t *testing.T) {
	r := setup(t)
	g := graph.New()
	n := create(t, r, "math/add")
	if err := g.AddNode(n); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if !g.Execute(nil) {
		t.Fatalf("Execute = false: %s", n.ErrorMessage())
	}
	if got := output(t, n, "result").AsNumber(); got != 0 {
		t.Errorf("result with defaulted inputs = %g, want 0", got)
	}
}

func TestNumberLiteral(t *testing.T) {
	r := setup(t)
	g := graph.New()
	n := create(t, r, "math/number")
	if err := g.AddNode(n); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	// The literal round-trips through the node parameter contract.
	n.SetParameters(map[string]any{"value": 42.0})
	if !g.Execute(nil) {
		t.Fatalf("Execute = false: %s", n.ErrorMessage())
	}
	if got := output(t, n, "result").AsNumber(); got != 42 {
		t.Errorf("result = %g, want 42", got)
	}
	if got := n.Parameters()["value"]; got != 42.0 {
		t.Errorf("parameters = %v, want value 42", n.Parameters())
	}
}

func TestMathChain(t *testing.T) {
	r := setup(t)
	g := graph.New()
	lit := create(t, r, "math/number")
	double := create(t, r, "math/multiply")
	for _, n := range []*graph.Node{lit, double} {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
	}
	setLiteral(t, lit, "value", graph.Number(7))
	setLiteral(t, double, "b", graph.Number(2))
	if _, err := g.Connect(lit.ID(), "result", double.ID(), "a"); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	if !g.Execute(nil) {
		t.Fatal("Execute = false")
	}
	if got := output(t, double, "result").AsNumber(); got != 14 {
		t.Errorf("result = %g, want 14", got)
	}
}
