package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/parametriclab/nodeflow/pkg/graph"
	"github.com/parametriclab/nodeflow/pkg/nodes"
	"github.com/parametriclab/nodeflow/pkg/registry"
)

// typesCommand creates the types command for browsing the node catalog.
func (c *CLI) typesCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "types [query]",
		Short: "List the available node types",
		Long: `List the available node types.

With a query, prints the matching types as a table. Without one, an
interactive picker opens on a terminal (elsewhere the full table is
printed); picking a type shows its ports with value types and defaults.

Examples:
  nodeflow types              # interactive picker (tty) or full table
  nodeflow types math         # everything in the math category
  nodeflow types divide       # search across names and categories`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return c.runTypes(query, plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the table even on a terminal")

	return cmd
}

// runTypes prints the catalog table, or opens the picker when interactive.
func (c *CLI) runTypes(query string, plain bool) error {
	reg := nodes.DefaultRegistry()

	if query == "" && !plain && isTerminal(os.Stdout) {
		return c.pickType(reg)
	}

	matches := reg.Search(query)
	if len(matches) == 0 {
		printWarning("No node types match %q", query)
		return nil
	}

	fmt.Println(typesTable(matches))
	return nil
}

// pickType runs the interactive picker and describes the chosen type.
func (c *CLI) pickType(reg *registry.Registry) error {
	m := NewTypeListModel(reg.Types())
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(TypeListModel)
	if !ok || fm.Selected == nil {
		printDetail("No selection made")
		return nil
	}
	return describeType(reg, fm.Selected.TypeName)
}

// typesTable renders registrations as a bordered table.
func typesTable(regs []registry.Registration) string {
	rows := make([][]string, 0, len(regs))
	for _, reg := range regs {
		rows = append(rows, []string{reg.TypeName, reg.DisplayName, reg.Category})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Type", "Name", "Category").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

// describeType instantiates the type and prints its port layout.
func describeType(reg *registry.Registry, typeName string) error {
	n, err := reg.Create(typeName)
	if err != nil {
		return err
	}
	r, _ := reg.Lookup(typeName)

	printNewline()
	fmt.Println(StyleTitle.Render(r.DisplayName) + " " + StyleDim.Render("("+typeName+")"))
	printKeyValue("category", r.Category)
	printNewline()

	if len(n.Inputs()) > 0 {
		fmt.Println(StyleDim.Render("  inputs"))
		for _, p := range n.Inputs() {
			printPort(p)
		}
	}
	if len(n.Outputs()) > 0 {
		fmt.Println(StyleDim.Render("  outputs"))
		for _, p := range n.Outputs() {
			printPort(p)
		}
	}
	return nil
}

// printPort prints one port line with its value type and default.
func printPort(p *graph.Port) {
	line := "    " + StyleValue.Render(p.Name()) + " " + StyleDim.Render(p.Type().String())
	if !p.DefaultValue().IsNil() {
		line += StyleDim.Render(" default ") + StyleNumber.Render(p.DefaultValue().String())
	}
	if p.IsOptional() {
		line += " " + StyleWarning.Render("optional")
	}
	fmt.Println(line)
}
