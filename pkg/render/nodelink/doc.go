// Package nodelink renders node graphs as port-level node-link diagrams.
//
// [ToDOT] emits deterministic Graphviz DOT with record-shaped nodes: each
// node shows its input ports on the left, its type name in the middle and
// its output ports on the right, and every connection attaches to the two
// port cells it joins. [RenderSVG] renders DOT through the embedded
// Graphviz runtime, so no external binary is required.
package nodelink
