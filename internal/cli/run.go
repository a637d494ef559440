package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	nferrors "github.com/parametriclab/nodeflow/pkg/errors"
	"github.com/parametriclab/nodeflow/pkg/pipeline"
)

// runCommand creates the run command for executing graph documents.
func (c *CLI) runCommand() *cobra.Command {
	var (
		force      bool
		formatsStr string
		output     string
		detailed   bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "run <graph.json>",
		Short: "Validate and execute a graph document",
		Long: `Validate and execute a graph document.

The document is loaded, checked for problems (required inputs with neither a
connection nor a default, dangling connections), and executed in dependency
order. Every node's outcome is reported; a node failure poisons only its
downstream nodes.

Pass --format to also render the executed graph, error states included.

Examples:
  nodeflow run pipeline.json                    # execute only
  nodeflow run pipeline.json -f svg             # execute, then pipeline.svg
  nodeflow run pipeline.json -f dot,svg -o out/pipeline`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var formats []string
			if formatsStr != "" {
				formats = parseFormats(formatsStr)
				if err := pipeline.ValidateFormats(formats); err != nil {
					return err
				}
			}
			opts := pipeline.Options{
				Path:     args[0],
				Force:    force,
				Formats:  formats,
				Detailed: detailed,
			}
			return c.runRun(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "execute even when validation reports problems")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "also render artifact(s): dot, svg (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include ids and value types in rendered artifacts")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the artifact cache when rendering")

	return cmd
}

// runRun executes the document and prints the per-node report.
func (c *CLI) runRun(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner := c.newRunner()
	if len(opts.Formats) > 0 {
		runner = c.newRenderRunner(noCache)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Executing %s...", input))
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()

	if err != nil {
		if nferrors.Is(err, nferrors.ErrCodeGraphInvalid) && result != nil {
			printError("Validation failed for %s", StyleHighlight.Render(input))
			printProblems(result.Problems)
			printNewline()
			printNextStep("Execute anyway", fmt.Sprintf("%s run %s --force", appName, input))
		}
		return err
	}

	if result.Succeeded {
		printSuccess("Execution complete")
	} else {
		printWarning("Execution finished with node errors")
	}
	for _, run := range result.NodeRuns {
		printNodeRun(run)
	}
	printStats(result.Stats.NodeCount, result.Stats.ConnectionCount, result.Stats.RunTime)

	if len(opts.Formats) > 0 {
		printNewline()
		if err := writeArtifacts(result.Artifacts, opts.Formats, input, output); err != nil {
			return err
		}
	}

	if !result.Succeeded {
		failed := 0
		for _, run := range result.NodeRuns {
			if run.Error != "" {
				failed++
			}
		}
		return nferrors.New(nferrors.ErrCodeExecutionFailed, "%d of %d nodes failed", failed, len(result.NodeRuns))
	}
	return nil
}

// printNodeRun prints one node outcome line of the execution report.
func printNodeRun(run pipeline.NodeRun) {
	label := StyleValue.Render(run.NodeID) + " " + StyleDim.Render("("+run.TypeName+")")
	if run.Error != "" {
		fmt.Println("  " + styleIconError.Render(iconError) + " " + label + StyleDim.Render(": ") + StyleWarning.Render(run.Error))
		return
	}
	fmt.Println("  " + styleIconSuccess.Render(iconSuccess) + " " + label)
}
