// Package cli implements the nodeflow command-line interface.
//
// Commands operate on graph documents: validate checks them, run executes
// them in dependency order, render turns them into node-link diagrams, types
// browses the node catalog, and serve exposes the stored graphs over HTTP.
// All commands log to stderr through a shared charmbracelet logger; --verbose
// raises it to debug level.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/parametriclab/nodeflow/pkg/buildinfo"
	"github.com/parametriclab/nodeflow/pkg/cache"
	"github.com/parametriclab/nodeflow/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "nodeflow"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "nodeflow",
		Short:        "Nodeflow builds and executes typed node graphs",
		Long:         `Nodeflow is a CLI for typed node-graph documents: check them for problems, execute them in dependency order, render them as port-level diagrams, and serve the graph store over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.runCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for file-based commands. It carries the
// built-in node kinds and never touches the configured store.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(nil, nil, c.Logger)
}

// newRenderRunner additionally attaches the artifact cache unless disabled.
// An unusable cache directory is not fatal; rendering just runs uncached.
func (c *CLI) newRenderRunner(noCache bool) *pipeline.Runner {
	runner := c.newRunner()
	if noCache {
		return runner
	}
	dir, err := cacheDir()
	if err != nil {
		return runner
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("artifact cache unavailable", "dir", dir, "error", err)
		return runner
	}
	runner.Cache = fc
	return runner
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/nodeflow/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// outputBase derives the base output path from the --output flag and the
// input file. An empty output falls back to the input with its extension
// stripped; an output carrying a known format extension loses it, so
// multi-format runs produce siblings of the named file.
func outputBase(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	switch strings.TrimPrefix(ext, ".") {
	case pipeline.FormatDOT, pipeline.FormatSVG:
		return strings.TrimSuffix(output, ext)
	}
	return output
}
