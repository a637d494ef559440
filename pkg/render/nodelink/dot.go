package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/parametriclab/nodeflow/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds port data types, node ids and error messages to the
	// labels. When false, labels carry port names and the type name only.
	Detailed bool
}

// ToDOT converts a graph to Graphviz DOT format. Each node is a record with
// one cell per port, inputs on the left and outputs on the right, and every
// connection attaches port cell to port cell. The output is deterministic:
// nodes and connections appear in graph insertion order.
//
// The resulting DOT string can be rendered with [RenderSVG] or any external
// Graphviz installation.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=record, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  \"%s\" [%s];\n", escapeQuoted(n.ID()), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range g.Connections() {
		fmt.Fprintf(&buf, "  \"%s\":\"out_%s\":e -> \"%s\":\"in_%s\":w;\n",
			escapeQuoted(c.SourceNodeID), anchor(c.SourcePort),
			escapeQuoted(c.TargetNodeID), anchor(c.TargetPort))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// fmtLabel builds the record label. Under rankdir=LR the outer braces lay
// the three groups out horizontally and the inner braces stack the ports of
// a group vertically.
func fmtLabel(n *graph.Node, detailed bool) string {
	var cells []string
	if in := portCells(n.Inputs(), "in_", detailed); in != "" {
		cells = append(cells, in)
	}
	cells = append(cells, titleCell(n, detailed))
	if out := portCells(n.Outputs(), "out_", detailed); out != "" {
		cells = append(cells, out)
	}
	return "{" + strings.Join(cells, "|") + "}"
}

func portCells(ports []*graph.Port, prefix string, detailed bool) string {
	if len(ports) == 0 {
		return ""
	}
	cells := make([]string, 0, len(ports))
	for _, p := range ports {
		text := escapeRecord(p.Name())
		if detailed {
			text += ": " + escapeRecord(p.Type().String())
		}
		cells = append(cells, fmt.Sprintf("<%s%s> %s", prefix, anchor(p.Name()), text))
	}
	return "{" + strings.Join(cells, "|") + "}"
}

func titleCell(n *graph.Node, detailed bool) string {
	title := escapeRecord(n.TypeName())
	if !detailed {
		return title
	}
	title += `\n` + escapeRecord(n.ID())
	if n.HasError() {
		title += `\n` + escapeRecord(n.ErrorMessage())
	}
	return title
}

func fmtAttrs(n *graph.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=\"%s\"", label)}
	if n.HasError() {
		attrs = append(attrs, "style=\"filled,dashed\"", "fillcolor=mistyrose", "color=red")
	}
	return attrs
}

var anchorRe = regexp.MustCompile(`[^A-Za-z0-9_]`)

// anchor derives a record port identifier from a port name. Anchors only
// decide where an edge attaches; a sanitized collision degrades layout, not
// correctness.
func anchor(name string) string { return anchorRe.ReplaceAllString(name, "_") }

// escapeRecord escapes the characters that structure a record label. The
// label layer resolves the backslash escapes, so the text renders verbatim.
var escapeRecord = strings.NewReplacer(
	`\`, `\\`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
	`"`, `\"`,
).Replace

// escapeQuoted escapes a string for use inside a DOT double-quoted id.
var escapeQuoted = strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the opening svg tag so the image scales inside
// browsers and embedding surfaces that ignore Graphviz's point units.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
