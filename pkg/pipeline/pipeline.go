// Package pipeline provides the shared load → check → run → render pipeline.
//
// This package implements the complete graph workflow used by both the CLI
// and the HTTP API. Centralizing it keeps behavior identical across entry
// points: the same loading rules, the same validation policy, and the same
// artifact formats everywhere.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: materialize a graph from the store, a file, or an inline document
//  2. Check: collect validation problems (required inputs, cycles)
//  3. Run: execute the graph and record per-node outcomes
//  4. Render: produce DOT and SVG artifacts
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(st, reg, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Name:    "bracket",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	g, err := runner.Load(ctx, opts)
//
//	// Validate an existing graph
//	problems := runner.Check(g)
//
//	// Render an existing graph
//	artifacts, err := runner.Render(ctx, g, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/parametriclab/nodeflow/pkg/document"
	nferrors "github.com/parametriclab/nodeflow/pkg/errors"
	"github.com/parametriclab/nodeflow/pkg/graph"
)

// Format constants for artifact formats, shared with the validation surface
// in pkg/errors.
const (
	FormatDOT = nferrors.FormatDOT
	FormatSVG = nferrors.FormatSVG
)

// ValidateFormats checks that all requested artifact formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := nferrors.ValidateRenderFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Source options; exactly one of Name, Path or Document selects where
	// the graph comes from.
	Name     string             `json:"name,omitempty"`     // stored graph name
	Path     string             `json:"path,omitempty"`     // document file on disk
	Document *document.Document `json:"document,omitempty"` // inline document

	// Run options
	Force bool `json:"force,omitempty"` // run even when validation reports problems
	Env   any  `json:"-"`               // opaque run environment handed to node computations

	// Render options
	Formats  []string `json:"formats,omitempty"`  // artifact formats; empty renders nothing
	Detailed bool     `json:"detailed,omitempty"` // detailed labels in rendered artifacts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent; calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateSource(); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ValidateSource checks that exactly one graph source is configured.
func (o *Options) ValidateSource() error {
	sources := 0
	if o.Name != "" {
		sources++
	}
	if o.Path != "" {
		sources++
	}
	if o.Document != nil {
		sources++
	}
	switch sources {
	case 0:
		return nferrors.New(nferrors.ErrCodeInvalidInput, "a graph source is required: name, path or document")
	case 1:
		return nil
	default:
		return nferrors.New(nferrors.ErrCodeInvalidInput, "conflicting graph sources: set only one of name, path or document")
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the document the graph was materialized from.
	Document document.Document

	// Graph is the materialized graph. It stays usable after the run, so
	// callers can inspect port values or re-render.
	Graph *graph.Graph

	// Problems contains the validation findings, in detection order.
	Problems []graph.Problem

	// Succeeded reports whether every executed node completed cleanly.
	Succeeded bool

	// NodeRuns records per-node outcomes in execution order.
	NodeRuns []NodeRun

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// NodeRun is the outcome of one node's execution.
type NodeRun struct {
	NodeID   string `json:"nodeId"`
	TypeName string `json:"typeName"`
	Error    string `json:"error,omitempty"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount       int
	ConnectionCount int
	LoadTime        time.Duration
	RunTime         time.Duration
	RenderTime      time.Duration
}
