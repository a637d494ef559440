package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/parametriclab/nodeflow/pkg/cache"
	"github.com/parametriclab/nodeflow/pkg/document"
	nferrors "github.com/parametriclab/nodeflow/pkg/errors"
	"github.com/parametriclab/nodeflow/pkg/graph"
	"github.com/parametriclab/nodeflow/pkg/nodes"
	"github.com/parametriclab/nodeflow/pkg/observability"
	"github.com/parametriclab/nodeflow/pkg/registry"
	"github.com/parametriclab/nodeflow/pkg/render/nodelink"
	"github.com/parametriclab/nodeflow/pkg/store"
)

// Runner executes the pipeline against one store and one registry. It is
// stateless apart from those and the logger; multiple goroutines can use the
// same Runner with different options, but each graph belongs to a single
// run at a time.
//
// Cache is optional. When set, rendered SVG artifacts are cached under a
// content-addressed key; when nil every render runs Graphviz fresh.
type Runner struct {
	Store    store.Store
	Registry *registry.Registry
	Cache    cache.Cache
	Logger   *log.Logger
}

// NewRunner creates a runner. A nil store falls back to an in-memory store,
// a nil registry to the built-in kinds, and a nil logger to log.Default().
func NewRunner(s store.Store, reg *registry.Registry, logger *log.Logger) *Runner {
	if s == nil {
		s = store.NewMemoryStore()
	}
	if reg == nil {
		reg = nodes.DefaultRegistry()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Store: s, Registry: reg, Logger: logger}
}

// Execute runs the complete load → check → run → render pipeline.
//
// Validation problems abort before anything executes and return an
// ErrCodeGraphInvalid error, unless opts.Force is set. On that abort the
// returned Result is non-nil and carries the problems, so callers can
// report them.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	source := sourceLabel(opts)
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, source)
	doc, err := r.loadDocument(ctx, opts)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, source, 0, time.Since(loadStart), err)
		return nil, err
	}
	g := doc.Build(r.Registry, opts.Logger)
	result.Document = doc
	result.Graph = g
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.ConnectionCount = g.ConnectionCount()
	observability.Pipeline().OnLoadComplete(ctx, source, g.NodeCount(), result.Stats.LoadTime, nil)

	opts.Logger.Info("loaded graph",
		"nodes", g.NodeCount(),
		"connections", g.ConnectionCount(),
		"duration", result.Stats.LoadTime)

	result.Problems = r.Check(g)
	if len(result.Problems) > 0 {
		for _, p := range result.Problems {
			opts.Logger.Warn("validation problem", "node", p.NodeID, "port", p.Port, "problem", p.Message)
		}
		if !opts.Force {
			return result, nferrors.New(nferrors.ErrCodeGraphInvalid, "graph has %d validation problems", len(result.Problems))
		}
	}

	runStart := time.Now()
	observability.Pipeline().OnExecuteStart(ctx, g.NodeCount())
	result.Succeeded, result.NodeRuns = r.Run(g, opts)
	result.Stats.RunTime = time.Since(runStart)
	observability.Pipeline().OnExecuteComplete(ctx, result.Succeeded, result.Stats.RunTime)

	opts.Logger.Info("executed graph",
		"succeeded", result.Succeeded,
		"nodes", len(result.NodeRuns),
		"duration", result.Stats.RunTime)

	if len(opts.Formats) > 0 {
		renderStart := time.Now()
		artifacts, err := r.Render(ctx, g, opts)
		if err != nil {
			return result, err
		}
		result.Artifacts = artifacts
		result.Stats.RenderTime = time.Since(renderStart)

		opts.Logger.Info("rendered artifacts",
			"formats", opts.Formats,
			"duration", result.Stats.RenderTime)
	}

	return result, nil
}

// Load materializes a graph from the source selected by opts: a stored
// graph by name, a document file by path, or an inline document. Unknown
// node types and invalid connections inside the document are skipped and
// logged, matching the document package's loading rules.
func (r *Runner) Load(ctx context.Context, opts Options) (*graph.Graph, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateSource(); err != nil {
		return nil, err
	}
	doc, err := r.loadDocument(ctx, opts)
	if err != nil {
		return nil, err
	}
	return doc.Build(r.Registry, opts.Logger), nil
}

// loadDocument resolves the document behind the configured source.
func (r *Runner) loadDocument(ctx context.Context, opts Options) (document.Document, error) {
	switch {
	case opts.Document != nil:
		return *opts.Document, nil
	case opts.Path != "":
		doc, err := document.ReadFile(opts.Path)
		if err != nil {
			return document.Document{}, nferrors.Wrap(nferrors.ErrCodeInvalidDocument, err, "read graph from %s", opts.Path)
		}
		return doc, nil
	default:
		rec, err := r.Store.Get(ctx, opts.Name)
		if errors.Is(err, store.ErrNotFound) {
			return document.Document{}, nferrors.Wrap(nferrors.ErrCodeGraphNotFound, err, "graph %q not found", opts.Name)
		}
		if err != nil {
			return document.Document{}, nferrors.Wrap(nferrors.ErrCodeStore, err, "load graph %q", opts.Name)
		}
		return rec.Document, nil
	}
}

// Check collects the graph's validation problems.
func (r *Runner) Check(g *graph.Graph) []graph.Problem {
	return g.Validate()
}

// Run executes the graph and returns the aggregate success flag with
// per-node outcomes in execution order. A cyclic graph yields no outcomes
// and false. Run never fails as a whole; individual node failures are
// reported on their NodeRun.
func (r *Runner) Run(g *graph.Graph, opts Options) (bool, []NodeRun) {
	rec := &runRecorder{}
	g.SetListener(rec)
	defer g.SetListener(nil)

	ok := g.Execute(opts.Env)

	// NodeExecuting fires before each node runs, so the error state is
	// collected afterwards, once it is final.
	for i := range rec.runs {
		if n, found := g.Node(rec.runs[i].NodeID); found && n.HasError() {
			rec.runs[i].Error = n.ErrorMessage()
		}
	}
	return ok, rec.runs
}

// Render produces the requested artifact formats for the graph.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderCached(ctx, g, opts)
	return artifacts, err
}

// RenderCached is Render plus a flag reporting whether the SVG artifact was
// served from the runner's cache instead of a fresh Graphviz run. DOT
// artifacts are produced directly and never touch the cache.
func (r *Runner) RenderCached(ctx context.Context, g *graph.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed})
	artifacts := make(map[string][]byte, len(opts.Formats))
	cached := false
	for _, format := range opts.Formats {
		switch format {
		case FormatDOT:
			artifacts[format] = []byte(dot)
		case FormatSVG:
			svg, hit, err := r.renderSVG(ctx, dot)
			if err != nil {
				observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
				return nil, false, err
			}
			cached = cached || hit
			artifacts[format] = svg
		}
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, cached, nil
}

// renderSVG produces the SVG artifact, consulting the cache when one is
// configured. Keys are content-addressed from the DOT text, so entries are
// stored without expiry; they can never go stale.
func (r *Runner) renderSVG(ctx context.Context, dot string) ([]byte, bool, error) {
	var key string
	if r.Cache != nil {
		key = cache.ArtifactKey(dot, FormatSVG)
		data, ok, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Debug("artifact cache read failed", "error", err)
		} else if ok {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		} else {
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
	}

	svg, err := nodelink.RenderSVG(dot)
	if err != nil {
		return nil, false, nferrors.Wrap(nferrors.ErrCodeInternal, err, "render svg")
	}

	if r.Cache != nil {
		if err := r.Cache.Set(ctx, key, svg, 0); err != nil {
			r.Logger.Debug("artifact cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(svg))
		}
	}
	return svg, false, nil
}

// Close releases resources held by the runner (the store and any cache).
func (r *Runner) Close() error {
	var cacheErr, storeErr error
	if r.Cache != nil {
		cacheErr = r.Cache.Close()
	}
	if r.Store != nil {
		storeErr = r.Store.Close()
	}
	return errors.Join(cacheErr, storeErr)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// sourceLabel names the configured graph source for logs and hooks.
func sourceLabel(opts Options) string {
	switch {
	case opts.Name != "":
		return opts.Name
	case opts.Path != "":
		return opts.Path
	default:
		return "inline"
	}
}

// runRecorder captures execution order through the graph's listener.
type runRecorder struct {
	graph.NopListener
	runs []NodeRun
}

func (r *runRecorder) NodeExecuting(n *graph.Node) {
	r.runs = append(r.runs, NodeRun{NodeID: n.ID(), TypeName: n.TypeName()})
}
