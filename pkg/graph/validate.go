package graph

import "fmt"

// Problem is one issue found by [Graph.Validate]. Node-attributed problems
// carry the owning node id and port name; the graph-wide cycle problem
// carries neither.
type Problem struct {
	NodeID  string
	Port    string
	Message string
}

// String returns the problem's message.
func (p Problem) String() string { return p.Message }

// Validate is the pre-flight structural check surfaced before a costly run:
// it reports every required input port that is both unconnected and without
// an effective value, one [Problem] per port in node insertion order, plus
// exactly one final problem if the connection graph contains a cycle. It runs
// nothing and mutates nothing.
func (g *Graph) Validate() []Problem {
	var problems []Problem
	for _, n := range g.order {
		for _, in := range n.Inputs() {
			if in.IsOptional() {
				continue
			}
			if _, ok := g.IncomingConnection(n.id, in.Name()); ok {
				continue
			}
			if !in.EffectiveValue().IsNil() {
				continue
			}
			problems = append(problems, Problem{
				NodeID:  n.id,
				Port:    in.Name(),
				Message: fmt.Sprintf("required input %q of node %s is unconnected and has no value", in.Name(), n.id),
			})
		}
	}
	if _, err := g.TopologicalSort(); err != nil {
		problems = append(problems, Problem{Message: "graph contains a cycle"})
	}
	return problems
}
