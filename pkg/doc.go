// Package pkg provides the core libraries for Nodeflow graph execution.
//
// # Overview
//
// Nodeflow executes typed node graphs: nodes expose ports, connections carry
// values between ports, and the engine runs every node once its inputs are
// ready. The pkg directory is organized into four main areas:
//
//  1. [graph] - The dataflow core (ports, nodes, connections, execution)
//  2. [document] - JSON serialization boundary for graphs
//  3. [pipeline] - Orchestration (load → check → run → render)
//  4. [store] - Graph persistence (memory, file, Redis, MongoDB)
//
// # Architecture
//
// The typical data flow through Nodeflow:
//
//	JSON document
//	     ↓
//	[document] package (decode, instantiate node kinds)
//	     ↓
//	[graph] package (validate, order topologically, execute)
//	     ↓
//	[render/nodelink] package (DOT / SVG diagrams)
//
// # Quick Start
//
// Run a graph document through the full pipeline:
//
//	import (
//	    "context"
//	    "github.com/parametriclab/nodeflow/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Path:    "bracket.json",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Or build a graph directly:
//
//	reg := nodes.DefaultRegistry()
//	g := graph.New()
//
//	five, _ := reg.Create("math/number")
//	five.SetID("five")
//	_ = g.AddNode(five)
//
//	add, _ := reg.Create("math/add")
//	add.SetID("add")
//	_ = g.AddNode(add)
//
//	_, _ = g.Connect("five", "result", "add", "a")
//	g.Execute(nil)
//
// # Main Packages
//
// ## Dataflow Core
//
// [graph] - Typed ports, nodes and connections with execution in dependency
// order. Connections are validated on creation (port existence, type match,
// single incoming connection, no cycles); execution orders the graph with a
// topological sort and poisons everything downstream of a failed node.
//
// [registry] - Catalog of node kinds. Each registration carries the type
// name, display name, category and a factory; lookup, search and creation go
// through a Registry instance.
//
// [nodes] - The built-in node kinds (math, geometry, lists) registered into
// a default registry.
//
// ## Serialization
//
// [document] - The JSON document format: nodes with parameters and
// positions, connections by node id and port name. Documents build into
// graphs against a registry, skipping unknown kinds and invalid connections
// with a log line, and round-trip back out via [document.FromGraph].
//
// ## Orchestration
//
// [pipeline] - The shared load → check → run → render pipeline used by both
// the CLI and the HTTP API. Ensures consistent behavior across entry points.
//
// ## Infrastructure
//
// [store] - Graph persistence behind one interface: MemoryStore (testing,
// CLI), FileStore (single-machine), RedisStore and MongoStore (services).
//
// [cache] - Content-addressed artifact cache. Rendered SVGs are keyed by a
// hash of their DOT source, so entries never go stale.
//
// [errors] - Coded errors shared across the CLI and API; codes map to HTTP
// status codes at the API boundary.
//
// [observability] - Optional instrumentation hooks for pipeline stages and
// cache operations, registered at startup.
//
// ## Visualization
//
// [render/nodelink] - Port-level node-link diagrams via Graphviz: record
// nodes with input ports on the left, output ports on the right, and
// connections attached cell to cell.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/graph/...        # Specific package
//	go test -run Example           # Examples only
//
// [graph]: https://pkg.go.dev/github.com/parametriclab/nodeflow/pkg/graph
// [registry]: https://pkg.go.dev/github.com/parametriclab/nodeflow/pkg/registry
// [nodes]: https://pkg.go.dev/github.com/parametriclab/nodeflow/pkg/nodes
// [document]: https://pkg.go.dev/github.com/parametriclab/nodeflow/pkg/document
// [document.FromGraph]: https://pkg.go.dev/github.com/parametriclab/nodeflow/pkg/document#FromGraph
// [pipeline]: https://pkg.go.dev/github.com/parametriclab/nodeflow/pkg/pipeline
// [store]: https://pkg.go.dev/github.com/parametriclab/nodeflow/pkg/store
// [cache]: https://pkg.go.dev/github.com/parametriclab/nodeflow/pkg/cache
// [errors]: https://pkg.go.dev/github.com/parametriclab/nodeflow/pkg/errors
// [observability]: https://pkg.go.dev/github.com/parametriclab/nodeflow/pkg/observability
// [render/nodelink]: https://pkg.go.dev/github.com/parametriclab/nodeflow/pkg/render/nodelink
package pkg
