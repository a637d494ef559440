package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/parametriclab/nodeflow/internal/api"
	"github.com/parametriclab/nodeflow/internal/config"
	"github.com/parametriclab/nodeflow/pkg/pipeline"
	"github.com/parametriclab/nodeflow/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph store and executor over HTTP",
		Long: `Serve the graph store and executor over HTTP.

The server reads its store backend and listen address from the config file
(~/.config/nodeflow/config.toml by default); --addr overrides the address.
Endpoints under /api cover stored graph CRUD, validation, execution and
rendering, plus the node type catalog; /healthz answers liveness probes.

Example config:

  [server]
  addr = ":8080"

  [store]
  backend = "redis"

  [store.redis]
  addr = "localhost:6379"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), configPath, addr)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default ~/.config/nodeflow/config.toml)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// runServe opens the configured store and blocks serving HTTP until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, configPath, addr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	st, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}

	runner := pipeline.NewRunner(st, nil, c.Logger)
	defer runner.Close()

	printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(addr)))
	printDetail("store: %s", cfg.Store.Backend)

	return api.NewServer(runner, c.Logger).Serve(ctx, addr)
}

// displayAddr turns a listen address into something clickable, mapping the
// wildcard host to localhost.
func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
