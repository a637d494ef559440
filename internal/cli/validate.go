package cli

import (
	"context"

	"github.com/spf13/cobra"

	nferrors "github.com/parametriclab/nodeflow/pkg/errors"
	"github.com/parametriclab/nodeflow/pkg/pipeline"
)

// validateCommand creates the validate command for checking graph documents.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <graph.json>",
		Short: "Check a graph document for problems",
		Long: `Check a graph document for problems without executing it.

The reported problems are the ones execution would trip over: required
inputs with neither a connection nor a default, and connections whose
endpoints no longer exist. Nodes with unknown types are skipped while
loading and logged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0])
		},
	}
}

// runValidate loads the document and reports its validation problems.
func (c *CLI) runValidate(ctx context.Context, input string) error {
	runner := c.newRunner()
	defer runner.Close()

	g, err := runner.Load(ctx, pipeline.Options{Path: input})
	if err != nil {
		return err
	}

	problems := runner.Check(g)
	if len(problems) > 0 {
		printError("%s has %d validation problems", StyleHighlight.Render(input), len(problems))
		printProblems(problems)
		return nferrors.New(nferrors.ErrCodeGraphInvalid, "graph has %d validation problems", len(problems))
	}

	printSuccess("%s is valid", StyleHighlight.Render(input))
	printStats(g.NodeCount(), g.ConnectionCount(), 0)
	printNewline()
	printNextStep("Execute", appName+" run "+input)
	return nil
}
